package store

import (
	"context"
	"fmt"

	"go-bookmark-hub-example/internal/logger"
	"go-bookmark-hub-example/internal/models"
	"go-bookmark-hub-example/internal/notify"
	"go-bookmark-hub-example/internal/record"
)

// FolderStore manages folder records, the denormalized bookmark counts,
// and the single-default-folder invariant. It shares the BookmarkStore's
// failure semantics: every operation converts backend failures to a benign
// return value.
type FolderStore struct {
	client    record.Client
	bookmarks *BookmarkStore
	log       logger.Logger
	notifier  notify.Notifier
}

func NewFolderStore(client record.Client, bookmarks *BookmarkStore, log logger.Logger, notifier notify.Notifier) *FolderStore {
	return &FolderStore{client: client, bookmarks: bookmarks, log: log, notifier: notifier}
}

// GetAll returns every folder in creation order. Each entry's BookmarkCount
// is recomputed on read, so display accuracy does not depend on write-time
// bookkeeping having run.
func (s *FolderStore) GetAll(ctx context.Context) []models.Folder {
	resp, err := s.client.FetchRecords(ctx, record.TableFolders, &record.Query{
		OrderBy: []record.Order{{Field: record.FieldCreatedOn}},
	})
	if err != nil || !resp.Success {
		s.fail("Failed to load folders", resp, err)
		return []models.Folder{}
	}

	folders := make([]models.Folder, 0, len(resp.Results))
	for _, res := range resp.Results {
		if !res.Success || res.Data == nil {
			continue
		}
		f := models.FolderFromRecord(res.Data)
		f.BookmarkCount = s.bookmarks.CountByFolder(ctx, f.ID)
		folders = append(folders, f)
	}
	return folders
}

// GetById returns the folder with a freshly recomputed count, or nil.
func (s *FolderStore) GetById(ctx context.Context, id int) *models.Folder {
	resp, err := s.client.GetRecordByID(ctx, record.TableFolders, id, nil)
	if err != nil || !resp.Success {
		s.logFailure(fmt.Sprintf("failed to fetch folder %d", id), resp, err)
		return nil
	}
	if resp.Data == nil {
		return nil
	}
	f := models.FolderFromRecord(resp.Data)
	f.BookmarkCount = s.bookmarks.CountByFolder(ctx, f.ID)
	return &f
}

// Create persists a new folder. The bookmark count always starts at zero
// and the folder is not the default unless explicitly requested.
func (s *FolderStore) Create(ctx context.Context, in models.FolderInput) *models.Folder {
	if in.Name == "" {
		in.Name = models.DefaultFolderName
	}
	if in.Color == "" {
		in.Color = models.DefaultFolderColor
	}
	in.BookmarkCount = 0

	resp, err := s.client.CreateRecords(ctx, record.TableFolders, []map[string]interface{}{in.ToRecord()})
	if err != nil {
		s.fail("Failed to create folder. Please try again.", resp, err)
		return nil
	}
	created := s.firstSuccess(resp, "create folder")
	if created == nil {
		return nil
	}
	s.notifier.Success("Folder created successfully!")
	f := models.FolderFromRecord(created)
	return &f
}

// Update overwrites every writable folder field with the values in the
// input, under the same destructive-merge contract as bookmark updates.
func (s *FolderStore) Update(ctx context.Context, id int, in models.FolderInput) *models.Folder {
	payload := in.ToRecord()
	payload[record.FieldID] = id

	resp, err := s.client.UpdateRecords(ctx, record.TableFolders, []map[string]interface{}{payload})
	if err != nil {
		s.fail("Failed to update folder. Please try again.", resp, err)
		return nil
	}
	updated := s.firstSuccess(resp, "update folder")
	if updated == nil {
		return nil
	}
	s.notifier.Success("Folder updated successfully!")
	f := models.FolderFromRecord(updated)
	return &f
}

// Delete removes the folder after moving its bookmarks to the current
// default folder, so no bookmark is left referencing a missing folder. The
// default folder itself cannot be deleted. A missing id returns false
// without notification noise.
func (s *FolderStore) Delete(ctx context.Context, id int) bool {
	folder := s.GetById(ctx, id)
	if folder == nil {
		return false
	}
	if folder.IsDefault {
		s.notifier.Error("The default folder cannot be deleted.")
		return false
	}

	defaultID := s.defaultFolderID(ctx, id)
	members := s.bookmarks.GetByFolder(ctx, id)
	for _, b := range members {
		payload := map[string]interface{}{
			record.FieldID: b.ID,
			"folder_id_c":  defaultID,
		}
		resp, err := s.client.UpdateRecords(ctx, record.TableBookmarks, []map[string]interface{}{payload})
		if err != nil || !resp.Success {
			s.fail("Failed to delete folder. Please try again.", resp, err)
			return false
		}
	}

	resp, err := s.client.DeleteRecords(ctx, record.TableFolders, []int{id})
	if err != nil || !resp.Success {
		s.fail("Failed to delete folder. Please try again.", resp, err)
		return false
	}

	if len(members) > 0 {
		s.UpdateBookmarkCount(ctx, defaultID)
	}
	s.notifier.Success("Folder deleted successfully!")
	return true
}

// UpdateBookmarkCount recomputes the folder's bookmark count from the
// bookmark store and writes it back onto the folder record. Callers invoke
// it after any bookmark create, delete, or move; between those calls the
// stored count may be stale.
func (s *FolderStore) UpdateBookmarkCount(ctx context.Context, folderID int) *models.Folder {
	count := s.bookmarks.CountByFolder(ctx, folderID)

	payload := map[string]interface{}{
		record.FieldID:     folderID,
		"bookmark_count_c": count,
	}
	resp, err := s.client.UpdateRecords(ctx, record.TableFolders, []map[string]interface{}{payload})
	if err != nil {
		s.logFailure(fmt.Sprintf("failed to update bookmark count for folder %d", folderID), resp, err)
		return nil
	}
	updated := s.firstSuccess(resp, "update bookmark count")
	if updated == nil {
		return nil
	}
	f := models.FolderFromRecord(updated)
	return &f
}

// SetDefaultFolder makes the folder the single default: the previous
// default is unset first, then the target is flagged. The two writes are
// separate remote calls with no cross-call atomicity; a failure in between
// can leave no folder flagged (a tolerated degraded state), but a
// successful call always ends with exactly one default. No retry on
// failure.
func (s *FolderStore) SetDefaultFolder(ctx context.Context, folderID int) bool {
	target := s.GetById(ctx, folderID)
	if target == nil {
		s.notifier.Error("Failed to set default folder. Please try again.")
		return false
	}

	resp, err := s.client.FetchRecords(ctx, record.TableFolders, &record.Query{
		Where: []record.Where{{Field: "is_default_c", Operator: record.OpEqualTo, Value: true}},
	})
	if err != nil || !resp.Success {
		s.fail("Failed to set default folder. Please try again.", resp, err)
		return false
	}

	for _, res := range resp.Results {
		if !res.Success || res.Data == nil {
			continue
		}
		current := models.FolderFromRecord(res.Data)
		if current.ID == folderID {
			continue
		}
		unset := map[string]interface{}{
			record.FieldID: current.ID,
			"is_default_c": false,
		}
		resp, err := s.client.UpdateRecords(ctx, record.TableFolders, []map[string]interface{}{unset})
		if err != nil || !resp.Success {
			s.fail("Failed to set default folder. Please try again.", resp, err)
			return false
		}
	}

	set := map[string]interface{}{
		record.FieldID: folderID,
		"is_default_c": true,
	}
	setResp, err := s.client.UpdateRecords(ctx, record.TableFolders, []map[string]interface{}{set})
	if err != nil || !setResp.Success {
		s.fail("Failed to set default folder. Please try again.", setResp, err)
		return false
	}

	s.notifier.Success("Default folder updated")
	return true
}

// defaultFolderID finds the folder currently flagged default, skipping the
// given id, falling back to folder 1.
func (s *FolderStore) defaultFolderID(ctx context.Context, excludeID int) int {
	resp, err := s.client.FetchRecords(ctx, record.TableFolders, &record.Query{
		Where: []record.Where{{Field: "is_default_c", Operator: record.OpEqualTo, Value: true}},
	})
	if err == nil && resp.Success {
		for _, res := range resp.Results {
			if res.Success && res.Data != nil {
				f := models.FolderFromRecord(res.Data)
				if f.ID != excludeID {
					return f.ID
				}
			}
		}
	}
	return models.DefaultFolderID
}

func (s *FolderStore) firstSuccess(resp *record.Response, op string) map[string]interface{} {
	var data map[string]interface{}
	for _, res := range resp.Results {
		if res.Success {
			if data == nil {
				data = res.Data
			}
			continue
		}
		if res.NotFound() {
			continue
		}
		s.log.Error("record operation rejected", logger.String("op", op), logger.String("message", res.Message))
		if res.Message != "" {
			s.notifier.Error(res.Message)
		}
	}
	return data
}

func (s *FolderStore) fail(userMessage string, resp *record.Response, err error) {
	s.logFailure(userMessage, resp, err)
	s.notifier.Error(userMessage)
}

func (s *FolderStore) logFailure(msg string, resp *record.Response, err error) {
	if err != nil {
		s.log.Error(msg, logger.Error(err))
		return
	}
	if resp != nil {
		s.log.Error(msg, logger.String("message", resp.Message))
	}
}
