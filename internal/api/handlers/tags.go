package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTags returns every distinct tag across all bookmarks, sorted.
func ListTags(c *gin.Context) {
	tags := bookmarkStore.GetAllTags(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
