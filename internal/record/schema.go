package record

import (
	"time"
)

// Logical table names exposed through the record-store boundary.
const (
	TableBookmarks = "bookmark_c"
	TableFolders   = "folder_c"
)

// BookmarkRecord is the physical row shape behind the bookmark_c table.
// Only the GORM backend uses it; the rest of the application sees records
// as field maps.
type BookmarkRecord struct {
	ID           uint      `gorm:"primarykey;column:id"`
	TitleC       string    `gorm:"column:title_c"`
	DescriptionC string    `gorm:"column:description_c"`
	URLC         string    `gorm:"column:url_c"`
	FaviconC     string    `gorm:"column:favicon_c"`
	FolderIDC    int       `gorm:"column:folder_id_c;index"`
	TagsC        string    `gorm:"column:tags_c"`
	IsFavoriteC  bool      `gorm:"column:is_favorite_c"`
	CreatedOn    time.Time `gorm:"column:created_on;autoCreateTime"`
	ModifiedOn   time.Time `gorm:"column:modified_on;autoUpdateTime"`
}

func (BookmarkRecord) TableName() string { return TableBookmarks }

// FolderRecord is the physical row shape behind the folder_c table.
type FolderRecord struct {
	ID             uint      `gorm:"primarykey;column:id"`
	NameC          string    `gorm:"column:name_c"`
	ColorC         string    `gorm:"column:color_c"`
	BookmarkCountC int       `gorm:"column:bookmark_count_c"`
	IsDefaultC     bool      `gorm:"column:is_default_c"`
	CreatedOn      time.Time `gorm:"column:created_on;autoCreateTime"`
	ModifiedOn     time.Time `gorm:"column:modified_on;autoUpdateTime"`
}

func (FolderRecord) TableName() string { return TableFolders }

func bookmarkRowToMap(r *BookmarkRecord) map[string]interface{} {
	return map[string]interface{}{
		FieldID:         int(r.ID),
		"title_c":       r.TitleC,
		"description_c": r.DescriptionC,
		"url_c":         r.URLC,
		"favicon_c":     r.FaviconC,
		"folder_id_c":   r.FolderIDC,
		"tags_c":        r.TagsC,
		"is_favorite_c": r.IsFavoriteC,
		FieldCreatedOn:  r.CreatedOn,
		FieldModifiedOn: r.ModifiedOn,
	}
}

func applyBookmarkPayload(r *BookmarkRecord, payload map[string]interface{}) {
	for k, v := range payload {
		switch k {
		case "title_c":
			r.TitleC = asString(v)
		case "description_c":
			r.DescriptionC = asString(v)
		case "url_c":
			r.URLC = asString(v)
		case "favicon_c":
			r.FaviconC = asString(v)
		case "folder_id_c":
			r.FolderIDC = int(toFloat(v))
		case "tags_c":
			r.TagsC = asString(v)
		case "is_favorite_c":
			r.IsFavoriteC = asBool(v)
		}
	}
}

func folderRowToMap(r *FolderRecord) map[string]interface{} {
	return map[string]interface{}{
		FieldID:            int(r.ID),
		"name_c":           r.NameC,
		"color_c":          r.ColorC,
		"bookmark_count_c": r.BookmarkCountC,
		"is_default_c":     r.IsDefaultC,
		FieldCreatedOn:     r.CreatedOn,
		FieldModifiedOn:    r.ModifiedOn,
	}
}

func applyFolderPayload(r *FolderRecord, payload map[string]interface{}) {
	for k, v := range payload {
		switch k {
		case "name_c":
			r.NameC = asString(v)
		case "color_c":
			r.ColorC = asString(v)
		case "bookmark_count_c":
			r.BookmarkCountC = int(toFloat(v))
		case "is_default_c":
			r.IsDefaultC = asBool(v)
		}
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
