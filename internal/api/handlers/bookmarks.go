package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"go-bookmark-hub-example/internal/models"
	"go-bookmark-hub-example/internal/utils"
	"go-bookmark-hub-example/internal/views"
)

// bookmarkInput is the JSON body for create and update. Updates overwrite
// the full field set, so clients re-send the fields they want kept.
type bookmarkInput struct {
	Title       string   `json:"title"`
	URL         string   `json:"url" binding:"required"`
	Description string   `json:"description"`
	Favicon     string   `json:"favicon"`
	FolderID    int      `json:"folderId"`
	Tags        []string `json:"tags"`
	IsFavorite  bool     `json:"isFavorite"`
}

// validateURL mirrors the form-side check: a bookmark URL must parse and
// carry a scheme and host. Runs before any store call.
func validateURL(raw string) bool {
	parsed, err := url.Parse(raw)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func (in bookmarkInput) toModel() models.BookmarkInput {
	return models.BookmarkInput{
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		Favicon:     in.Favicon,
		FolderID:    in.FolderID,
		Tags:        in.Tags,
		IsFavorite:  in.IsFavorite,
	}
}

// ListBookmarks lists bookmarks newest-first, optionally narrowed by
// folder, tag, search query, or favorite flag. Tag and search filtering
// happen in the pure view-filter layer.
func ListBookmarks(c *gin.Context) {
	ctx := c.Request.Context()

	var bookmarks []models.Bookmark
	if folderID := utils.ParseIntOption(c.Query("folder_id")); folderID > 0 {
		bookmarks = bookmarkStore.GetByFolder(ctx, folderID)
	} else {
		bookmarks = bookmarkStore.GetAll(ctx)
	}

	bookmarks = views.Filter(bookmarks, c.Query("search"), c.Query("tag"))

	if c.Query("favorite") == "true" {
		favorites := make([]models.Bookmark, 0, len(bookmarks))
		for _, b := range bookmarks {
			if b.IsFavorite {
				favorites = append(favorites, b)
			}
		}
		bookmarks = favorites
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarks": bookmarks,
		"count":     len(bookmarks),
	})
}

func GetBookmark(c *gin.Context) {
	id := utils.ParseIntOption(c.Param("id"))
	bookmark := bookmarkStore.GetById(c.Request.Context(), id)
	if bookmark == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}
	c.JSON(http.StatusOK, bookmark)
}

func CreateBookmark(c *gin.Context) {
	var input bookmarkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"url": "URL is required"}})
		return
	}
	if !validateURL(input.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"url": "Please enter a valid URL"}})
		return
	}

	ctx := c.Request.Context()
	bookmark := bookmarkStore.Create(ctx, input.toModel())
	if bookmark == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bookmark"})
		return
	}

	folderStore.UpdateBookmarkCount(ctx, bookmark.FolderID)

	c.JSON(http.StatusCreated, bookmark)
}

func UpdateBookmark(c *gin.Context) {
	id := utils.ParseIntOption(c.Param("id"))

	var input bookmarkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"url": "URL is required"}})
		return
	}
	if !validateURL(input.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"url": "Please enter a valid URL"}})
		return
	}

	ctx := c.Request.Context()
	prior := bookmarkStore.GetById(ctx, id)
	if prior == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}

	bookmark := bookmarkStore.Update(ctx, id, input.toModel())
	if bookmark == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bookmark"})
		return
	}

	folderStore.UpdateBookmarkCount(ctx, bookmark.FolderID)
	if prior.FolderID != bookmark.FolderID {
		folderStore.UpdateBookmarkCount(ctx, prior.FolderID)
	}

	c.JSON(http.StatusOK, bookmark)
}

func DeleteBookmark(c *gin.Context) {
	id := utils.ParseIntOption(c.Param("id"))
	ctx := c.Request.Context()

	prior := bookmarkStore.GetById(ctx, id)
	if prior == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}

	if !bookmarkStore.Delete(ctx, id) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bookmark"})
		return
	}

	folderStore.UpdateBookmarkCount(ctx, prior.FolderID)

	c.JSON(http.StatusOK, gin.H{"message": "Bookmark deleted successfully"})
}

func ToggleFavorite(c *gin.Context) {
	id := utils.ParseIntOption(c.Param("id"))
	ctx := c.Request.Context()

	if bookmarkStore.GetById(ctx, id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}

	bookmark := bookmarkStore.ToggleFavorite(ctx, id)
	if bookmark == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update favorite"})
		return
	}

	c.JSON(http.StatusOK, bookmark)
}
