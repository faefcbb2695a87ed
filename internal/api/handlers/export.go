package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func ExportCSV(c *gin.Context) {
	bookmarks := bookmarkStore.GetAll(c.Request.Context())

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=bookmarks_export.csv")

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write([]string{"ID", "Title", "URL", "Description", "Folder ID", "Tags", "Favorite", "Created At", "Updated At"}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV header"})
		return
	}

	for _, b := range bookmarks {
		if err := writer.Write([]string{
			fmt.Sprint(b.ID),
			b.Title,
			b.URL,
			b.Description,
			fmt.Sprint(b.FolderID),
			strings.Join(b.Tags, ","),
			fmt.Sprint(b.IsFavorite),
			b.CreatedAt.String(),
			b.UpdatedAt.String(),
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV data"})
			return
		}
	}

	writer.Flush()
}

func ExportJSON(c *gin.Context) {
	bookmarks := bookmarkStore.GetAll(c.Request.Context())

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", "attachment;filename=bookmarks_export.json")

	jsonData, err := json.MarshalIndent(bookmarks, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal JSON"})
		return
	}

	c.Data(http.StatusOK, "application/json", jsonData)
}
