package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-bookmark-hub-example/internal/models"
	"go-bookmark-hub-example/internal/utils"
)

type folderInput struct {
	Name          string `json:"name" binding:"required,min=1,max=255"`
	Color         string `json:"color"`
	BookmarkCount int    `json:"bookmarkCount"`
	IsDefault     bool   `json:"isDefault"`
}

func (in folderInput) toModel() models.FolderInput {
	return models.FolderInput{
		Name:          in.Name,
		Color:         in.Color,
		BookmarkCount: in.BookmarkCount,
		IsDefault:     in.IsDefault,
	}
}

// ListFolders returns every folder with a freshly recomputed bookmark
// count.
func ListFolders(c *gin.Context) {
	folders := folderStore.GetAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

func GetFolder(c *gin.Context) {
	id := utils.ParseIntOption(c.Param("id"))
	folder := folderStore.GetById(c.Request.Context(), id)
	if folder == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}
	c.JSON(http.StatusOK, folder)
}

func CreateFolder(c *gin.Context) {
	var input folderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: folder name is required"})
		return
	}

	folder := folderStore.Create(c.Request.Context(), input.toModel())
	if folder == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folder"})
		return
	}
	c.JSON(http.StatusCreated, folder)
}

func UpdateFolder(c *gin.Context) {
	id := utils.ParseIntOption(c.Param("id"))

	var input folderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: folder name is required"})
		return
	}

	ctx := c.Request.Context()
	if folderStore.GetById(ctx, id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	folder := folderStore.Update(ctx, id, input.toModel())
	if folder == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update folder"})
		return
	}
	c.JSON(http.StatusOK, folder)
}

// DeleteFolder removes a folder; its bookmarks are reassigned to the
// default folder by the store. The default folder itself cannot be
// deleted.
func DeleteFolder(c *gin.Context) {
	id := utils.ParseIntOption(c.Param("id"))
	ctx := c.Request.Context()

	folder := folderStore.GetById(ctx, id)
	if folder == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}
	if folder.IsDefault {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete the default folder"})
		return
	}

	if !folderStore.Delete(ctx, id) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete folder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted successfully"})
}

// SetDefaultFolder flags the folder as the single default target for new
// bookmarks.
func SetDefaultFolder(c *gin.Context) {
	id := utils.ParseIntOption(c.Param("id"))
	ctx := c.Request.Context()

	if folderStore.GetById(ctx, id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	if !folderStore.SetDefaultFolder(ctx, id) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default folder"})
		return
	}

	folder := folderStore.GetById(ctx, id)
	c.JSON(http.StatusOK, folder)
}

// RecountFolder recomputes and persists the folder's bookmark count.
func RecountFolder(c *gin.Context) {
	id := utils.ParseIntOption(c.Param("id"))
	ctx := c.Request.Context()

	if folderStore.GetById(ctx, id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	folder := folderStore.UpdateBookmarkCount(ctx, id)
	if folder == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bookmark count"})
		return
	}
	c.JSON(http.StatusOK, folder)
}
