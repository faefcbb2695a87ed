package handlers

import (
	"go-bookmark-hub-example/internal/logger"
	"go-bookmark-hub-example/internal/storage"
	"go-bookmark-hub-example/internal/store"
	"go-bookmark-hub-example/internal/websocket"
)

var (
	bookmarkStore *store.BookmarkStore
	folderStore   *store.FolderStore
	wsManager     *websocket.Manager
	iconCache     storage.Storage
	log           logger.Logger
)

// Init wires the handler package's collaborators. Called once from main
// before routes are registered.
func Init(b *store.BookmarkStore, f *store.FolderStore, m *websocket.Manager, cache storage.Storage, l logger.Logger) {
	bookmarkStore = b
	folderStore = f
	wsManager = m
	iconCache = cache
	log = l
}
