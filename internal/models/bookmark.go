package models

import (
	"strings"
	"time"

	"go-bookmark-hub-example/internal/record"
)

// Defaults applied when a record arrives without the corresponding field.
const (
	DefaultBookmarkTitle = "Untitled Bookmark"
	DefaultFolderID      = 1
)

// Bookmark is the domain shape of a bookmark_c record.
type Bookmark struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Favicon     string    `json:"favicon,omitempty"`
	FolderID    int       `json:"folderId"`
	Tags        []string  `json:"tags"`
	IsFavorite  bool      `json:"isFavorite"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookmarkInput carries every writable bookmark field. Updates built from
// it overwrite the full field set: omitted fields are written as their zero
// values, so callers editing a record must re-send the fields they want
// kept.
type BookmarkInput struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Favicon     string   `json:"favicon"`
	FolderID    int      `json:"folderId"`
	Tags        []string `json:"tags"`
	IsFavorite  bool     `json:"isFavorite"`
}

// ToRecord converts the input to a record payload containing the complete
// writable field set.
func (in BookmarkInput) ToRecord() map[string]interface{} {
	return map[string]interface{}{
		"title_c":       in.Title,
		"description_c": in.Description,
		"url_c":         in.URL,
		"favicon_c":     in.Favicon,
		"folder_id_c":   in.FolderID,
		"tags_c":        JoinTags(in.Tags),
		"is_favorite_c": in.IsFavorite,
	}
}

// BookmarkFromRecord maps an external record to the domain shape, applying
// the documented defaults for missing fields.
func BookmarkFromRecord(rec map[string]interface{}) Bookmark {
	b := Bookmark{
		ID:          intField(rec, record.FieldID),
		Title:       stringField(rec, "title_c"),
		URL:         stringField(rec, "url_c"),
		Description: stringField(rec, "description_c"),
		Favicon:     stringField(rec, "favicon_c"),
		FolderID:    NormalizeFolderID(rec["folder_id_c"]),
		Tags:        ParseTags(stringField(rec, "tags_c")),
		IsFavorite:  boolField(rec, "is_favorite_c"),
		CreatedAt:   timeField(rec, record.FieldCreatedOn),
		UpdatedAt:   timeField(rec, record.FieldModifiedOn),
	}
	if b.Title == "" {
		b.Title = DefaultBookmarkTitle
	}
	return b
}

// Matches reports whether the query is a case-insensitive substring of the
// bookmark's title, description, or URL, or of any tag.
func (b Bookmark) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Description), q) ||
		strings.Contains(strings.ToLower(b.URL), q) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// HasTag reports a case-insensitive exact match against the tag set.
func (b Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ParseTags splits a comma-joined tag string into a list, trimming entries
// and dropping empty ones.
func ParseTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags is the inverse of ParseTags at the persistence boundary.
func JoinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}

// NormalizeFolderID collapses the shapes folder_id_c can arrive in (plain
// number, numeric string, or an expanded reference object carrying an Id)
// into a plain integer, defaulting to 1 when absent or malformed.
func NormalizeFolderID(v interface{}) int {
	switch val := v.(type) {
	case int:
		if val > 0 {
			return val
		}
	case int64:
		if val > 0 {
			return int(val)
		}
	case float64:
		if val > 0 {
			return int(val)
		}
	case string:
		var id int
		for _, r := range val {
			if r < '0' || r > '9' {
				return DefaultFolderID
			}
			id = id*10 + int(r-'0')
		}
		if id > 0 {
			return id
		}
	case map[string]interface{}:
		if inner, ok := val["Id"]; ok {
			if id := NormalizeFolderID(inner); id > 0 {
				return id
			}
		}
	}
	return DefaultFolderID
}

func stringField(rec map[string]interface{}, key string) string {
	s, _ := rec[key].(string)
	return s
}

func boolField(rec map[string]interface{}, key string) bool {
	b, _ := rec[key].(bool)
	return b
}

func intField(rec map[string]interface{}, key string) int {
	switch v := rec[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func timeField(rec map[string]interface{}, key string) time.Time {
	switch v := rec[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
