package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Record   RecordConfig
	Favicon  FaviconConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret     string
	Expiration string
}

// RecordConfig selects the record-store backend the stores talk to.
// "postgres" uses the GORM adapter, "memory" keeps records in process.
type RecordConfig struct {
	Backend string
}

type FaviconConfig struct {
	CacheProvider string
	CachePath     string
	MaxSize       int
	S3            S3Config
}

type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Endpoint        string
	ForcePathStyle  bool
}

type LogConfig struct {
	Level  string
	Pretty bool
}

var (
	instance *Config
	mu       sync.RWMutex
)

func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "bookmark_hub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "your-secret-key"),
			Expiration: getEnv("JWT_EXPIRATION", "24h"),
		},
		Record: RecordConfig{
			Backend: getEnv("RECORD_BACKEND", "postgres"),
		},
		Favicon: FaviconConfig{
			CacheProvider: getEnv("FAVICON_CACHE_PROVIDER", "local"),
			CachePath:     getEnv("FAVICON_CACHE_PATH", "./storage/favicons"),
			MaxSize:       getEnvAsInt("FAVICON_MAX_SIZE", 256),
			S3: S3Config{
				Region:          getEnv("AWS_REGION", "us-east-1"),
				AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
				BucketName:      getEnv("AWS_BUCKET_NAME", ""),
				PublicURL:       getEnv("AWS_PUBLIC_URL", ""),
				Endpoint:        getEnv("AWS_ENDPOINT", ""),
				ForcePathStyle:  getEnvAsBool("AWS_FORCE_PATH_STYLE", false),
			},
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvAsBool("LOG_PRETTY", false),
		},
	}

	mu.Lock()
	instance = config
	mu.Unlock()

	return config, nil
}

// GetConfig returns the last loaded configuration, loading it on first use.
func GetConfig() *Config {
	mu.RLock()
	cfg := instance
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
