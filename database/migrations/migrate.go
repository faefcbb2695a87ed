package migrations

import (
	"go-bookmark-hub-example/internal/database"
	"go-bookmark-hub-example/internal/models"
	"go-bookmark-hub-example/internal/record"
)

func Migrate() error {
	db := database.GetDB()

	// Auto migrate tables
	return db.AutoMigrate(
		&models.User{},
		&record.FolderRecord{},
		&record.BookmarkRecord{},
	)
}
