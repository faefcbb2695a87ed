package main

import (
	"context"
	stdlog "log"

	"github.com/gin-gonic/gin"

	"go-bookmark-hub-example/database/migrations"
	"go-bookmark-hub-example/internal/api/handlers"
	"go-bookmark-hub-example/internal/api/middleware"
	"go-bookmark-hub-example/internal/config"
	"go-bookmark-hub-example/internal/database"
	"go-bookmark-hub-example/internal/logger"
	"go-bookmark-hub-example/internal/notify"
	"go-bookmark-hub-example/internal/record"
	"go-bookmark-hub-example/internal/storage"
	"go-bookmark-hub-example/internal/store"
	"go-bookmark-hub-example/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal("Failed to load configuration:", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	defer log.Sync()

	// Select the record-store backend
	var client record.Client
	switch cfg.Record.Backend {
	case "memory":
		client = record.NewMemoryClient()
		log.Info("using in-memory record store")
	default:
		if err := database.Initialize(cfg); err != nil {
			log.Fatal("failed to initialize database", logger.Error(err))
		}
		if err := migrations.Migrate(); err != nil {
			log.Fatal("failed to run migrations", logger.Error(err))
		}
		client = record.NewGormClient(database.GetDB(), log)
	}

	if err := store.EnsureDefaultFolder(context.Background(), client, log); err != nil {
		log.Fatal("failed to seed default folder", logger.Error(err))
	}

	// Notification side channel
	manager := websocket.NewManager()
	notifier := notify.NewBroadcaster(manager, log)

	bookmarks := store.NewBookmarkStore(client, log, notifier)
	folders := store.NewFolderStore(client, bookmarks, log, notifier)

	// Favicon cache is optional; the proxy fetches straight through without it
	iconCache, err := storage.NewFromConfig(cfg.Favicon)
	if err != nil {
		log.Warn("favicon cache unavailable", logger.Error(err))
		iconCache = nil
	}

	handlers.Init(bookmarks, folders, manager, iconCache, log)

	// Initialize Router
	router := gin.Default()
	initRoutes(router)

	// Start Server
	log.Info("starting server", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("failed to start server", logger.Error(err))
	}
}

func initRoutes(router *gin.Engine) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ws", handlers.NotificationSocket)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Bookmark routes
			bookmarks := protected.Group("/bookmarks")
			{
				bookmarks.GET("/", handlers.ListBookmarks)
				bookmarks.POST("/", handlers.CreateBookmark)
				bookmarks.GET("/:id", handlers.GetBookmark)
				bookmarks.PUT("/:id", handlers.UpdateBookmark)
				bookmarks.DELETE("/:id", handlers.DeleteBookmark)
				bookmarks.POST("/:id/favorite", handlers.ToggleFavorite)
			}

			protected.GET("/tags", handlers.ListTags)
			protected.GET("/favicon", handlers.GetFavicon)

			// Folder routes
			folders := protected.Group("/folders")
			{
				folders.GET("/", handlers.ListFolders)
				folders.POST("/", handlers.CreateFolder)
				folders.GET("/:id", handlers.GetFolder)
				folders.PUT("/:id", handlers.UpdateFolder)
				folders.DELETE("/:id", handlers.DeleteFolder)
				folders.POST("/:id/default", handlers.SetDefaultFolder)
				folders.POST("/:id/count", handlers.RecountFolder)
			}

			// Export routes
			export := protected.Group("/export")
			{
				export.GET("/csv", handlers.ExportCSV)
				export.GET("/json", handlers.ExportJSON)
			}
		}
	}
}
