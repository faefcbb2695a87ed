package models

import (
	"time"

	"go-bookmark-hub-example/internal/record"
)

const (
	DefaultFolderName  = "Untitled Folder"
	DefaultFolderColor = "#3b82f6"
)

// Folder is the domain shape of a folder_c record. BookmarkCount is a
// denormalized cache of the number of bookmarks referencing the folder; it
// is recomputed on read rather than kept in sync transactionally.
type Folder struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Color         string    `json:"color"`
	BookmarkCount int       `json:"bookmarkCount"`
	IsDefault     bool      `json:"isDefault"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FolderInput carries every writable folder field. Like BookmarkInput,
// updates built from it overwrite the full field set.
type FolderInput struct {
	Name          string `json:"name"`
	Color         string `json:"color"`
	BookmarkCount int    `json:"bookmarkCount"`
	IsDefault     bool   `json:"isDefault"`
}

func (in FolderInput) ToRecord() map[string]interface{} {
	return map[string]interface{}{
		"name_c":           in.Name,
		"color_c":          in.Color,
		"bookmark_count_c": in.BookmarkCount,
		"is_default_c":     in.IsDefault,
	}
}

func FolderFromRecord(rec map[string]interface{}) Folder {
	f := Folder{
		ID:            intField(rec, record.FieldID),
		Name:          stringField(rec, "name_c"),
		Color:         stringField(rec, "color_c"),
		BookmarkCount: intField(rec, "bookmark_count_c"),
		IsDefault:     boolField(rec, "is_default_c"),
		CreatedAt:     timeField(rec, record.FieldCreatedOn),
		UpdatedAt:     timeField(rec, record.FieldModifiedOn),
	}
	if f.Name == "" {
		f.Name = DefaultFolderName
	}
	if f.Color == "" {
		f.Color = DefaultFolderColor
	}
	return f
}
