package store

import (
	"context"
	"fmt"

	"go-bookmark-hub-example/internal/logger"
	"go-bookmark-hub-example/internal/models"
	"go-bookmark-hub-example/internal/record"
)

// EnsureDefaultFolder creates the initial default folder when the folder
// table is empty, so new bookmarks always have a folder to land in.
func EnsureDefaultFolder(ctx context.Context, client record.Client, log logger.Logger) error {
	resp, err := client.FetchRecords(ctx, record.TableFolders, nil)
	if err != nil {
		return fmt.Errorf("failed to inspect folders: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("failed to inspect folders: %s", resp.Message)
	}
	if len(resp.Results) > 0 {
		return nil
	}

	seed := models.FolderInput{
		Name:      "My Bookmarks",
		Color:     models.DefaultFolderColor,
		IsDefault: true,
	}
	createResp, err := client.CreateRecords(ctx, record.TableFolders, []map[string]interface{}{seed.ToRecord()})
	if err != nil {
		return fmt.Errorf("failed to seed default folder: %w", err)
	}
	if !createResp.Success {
		return fmt.Errorf("failed to seed default folder: %s", createResp.Message)
	}
	log.Info("seeded default folder", logger.String("name", seed.Name))
	return nil
}
