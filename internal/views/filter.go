// Package views holds the pure, client-side derivation rules applied to an
// in-memory bookmark collection. Nothing here performs I/O.
package views

import (
	"strings"

	"go-bookmark-hub-example/internal/models"
)

// Filter narrows the collection by an optional selected tag and an optional
// search query. The two filters compose by logical AND, and the original
// relative order of the input is preserved; no re-sorting happens here.
//
// The tag filter is a case-insensitive exact match against each bookmark's
// tag set. The search filter, applied after trimming, is a case-insensitive
// substring match over title, description, and URL, plus the tag set.
func Filter(bookmarks []models.Bookmark, searchQuery, selectedTag string) []models.Bookmark {
	out := bookmarks

	if selectedTag != "" {
		filtered := make([]models.Bookmark, 0, len(out))
		for _, b := range out {
			if b.HasTag(selectedTag) {
				filtered = append(filtered, b)
			}
		}
		out = filtered
	}

	if query := strings.TrimSpace(searchQuery); query != "" {
		filtered := make([]models.Bookmark, 0, len(out))
		for _, b := range out {
			if b.Matches(query) {
				filtered = append(filtered, b)
			}
		}
		out = filtered
	}

	return out
}
