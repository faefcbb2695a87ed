package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"go-bookmark-hub-example/internal/config"
)

// Provider identifies a blob storage backend.
type Provider string

const (
	Local Provider = "local"
	S3    Provider = "s3"
)

// Storage is the blob interface behind the favicon cache.
type Storage interface {
	Put(key string, data []byte) error
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
}

// NewFromConfig builds the storage provider selected in the favicon
// configuration.
func NewFromConfig(cfg config.FaviconConfig) (Storage, error) {
	switch Provider(cfg.CacheProvider) {
	case Local:
		return NewLocalStorage(cfg.CachePath)
	case S3:
		return NewS3Storage(cfg.S3), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.CacheProvider)
	}
}

// LocalStorage keeps blobs as files under a root directory.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %v", err)
	}
	return &LocalStorage{root: root}, nil
}

func (l *LocalStorage) path(key string) string {
	return filepath.Join(l.root, filepath.Clean(key))
}

func (l *LocalStorage) Put(key string, data []byte) error {
	if err := os.WriteFile(l.path(key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %v", key, err)
	}
	return nil
}

func (l *LocalStorage) Get(key string) (io.ReadCloser, error) {
	f, err := os.Open(l.path(key))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (l *LocalStorage) Delete(key string) error {
	if err := os.Remove(l.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %v", key, err)
	}
	return nil
}

// S3Storage keeps blobs in an S3 bucket.
type S3Storage struct {
	client *s3.Client
	bucket string
}

func NewS3Storage(cfg config.S3Config) *S3Storage {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}

	if cfg.Endpoint != "" {
		customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				SigningRegion:     cfg.Region,
				HostnameImmutable: true,
			}, nil
		})
		awsCfg.EndpointResolverWithOptions = customResolver
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &S3Storage{client: client, bucket: cfg.BucketName}
}

func (s *S3Storage) Put(key string, data []byte) error {
	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Body:   bytes.NewReader(data),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %v", key, err)
	}
	return nil
}

func (s *S3Storage) Get(key string) (io.ReadCloser, error) {
	result, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

func (s *S3Storage) Delete(key string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from S3: %v", key, err)
	}
	return nil
}
