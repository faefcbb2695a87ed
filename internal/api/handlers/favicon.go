package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"go-bookmark-hub-example/internal/config"
	"go-bookmark-hub-example/internal/logger"
	"go-bookmark-hub-example/internal/utils"
)

const defaultFaviconSize = 64

// GetFavicon serves the favicon for a bookmark URL's host, derived the same
// way the UI derives it when a bookmark has no favicon of its own. Fetched
// icons are resized and cached in the configured blob storage.
func GetFavicon(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url parameter is required"})
		return
	}

	cfg := config.GetConfig()
	size := utils.ParseIntOption(c.Query("size"))
	if size <= 0 {
		size = defaultFaviconSize
	}
	if size > cfg.Favicon.MaxSize {
		size = cfg.Favicon.MaxSize
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid URL"})
		return
	}

	cacheKey := fmt.Sprintf("%s_%d.png", parsed.Hostname(), size)
	if iconCache != nil {
		if cached, err := iconCache.Get(cacheKey); err == nil {
			defer cached.Close()
			data, err := io.ReadAll(cached)
			if err == nil {
				c.Header("Cache-Control", "public, max-age=86400")
				c.Header("X-Cache", "HIT")
				c.Data(http.StatusOK, "image/png", data)
				return
			}
		}
	}

	sourceURL, err := utils.FaviconURL(rawURL, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid URL"})
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(sourceURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch favicon"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("Failed to fetch favicon: status code %d", resp.StatusCode)})
		return
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to read favicon"})
		return
	}

	icon, err := utils.ResizeIcon(raw, size)
	if err != nil {
		// Serve whatever came back when the icon cannot be re-encoded.
		icon = raw
	}

	if iconCache != nil {
		if err := iconCache.Put(cacheKey, icon); err != nil {
			log.Warn("failed to cache favicon", logger.String("key", cacheKey), logger.Error(err))
		}
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, "image/png", icon)
}
