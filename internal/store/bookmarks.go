package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go-bookmark-hub-example/internal/logger"
	"go-bookmark-hub-example/internal/models"
	"go-bookmark-hub-example/internal/notify"
	"go-bookmark-hub-example/internal/record"
)

// newestFirst orders record fetches the way every bookmark listing is
// displayed.
var newestFirst = []record.Order{{Field: record.FieldCreatedOn, Descending: true}}

// BookmarkStore manages bookmark records and the query views over them.
//
// Failure semantics: no operation returns a Go error. Remote-call failures
// are caught here, logged, surfaced on the notification channel, and
// converted to a benign value (empty slice, nil, or false). Callers check
// the returned value.
type BookmarkStore struct {
	client   record.Client
	log      logger.Logger
	notifier notify.Notifier
}

func NewBookmarkStore(client record.Client, log logger.Logger, notifier notify.Notifier) *BookmarkStore {
	return &BookmarkStore{client: client, log: log, notifier: notifier}
}

// GetAll returns every bookmark, newest-created first. On backend failure
// it returns an empty collection and signals a warning on the notification
// channel.
func (s *BookmarkStore) GetAll(ctx context.Context) []models.Bookmark {
	resp, err := s.client.FetchRecords(ctx, record.TableBookmarks, &record.Query{OrderBy: newestFirst})
	if err != nil || !resp.Success {
		s.fail("Failed to load bookmarks", resp, err)
		return []models.Bookmark{}
	}
	return bookmarksFromResults(resp.Results)
}

// GetById returns the bookmark or nil when the id does not exist. Absence
// is an expected outcome, not an error.
func (s *BookmarkStore) GetById(ctx context.Context, id int) *models.Bookmark {
	resp, err := s.client.GetRecordByID(ctx, record.TableBookmarks, id, nil)
	if err != nil || !resp.Success {
		s.logFailure(fmt.Sprintf("failed to fetch bookmark %d", id), resp, err)
		return nil
	}
	if resp.Data == nil {
		return nil
	}
	b := models.BookmarkFromRecord(resp.Data)
	return &b
}

// GetByFolder returns the bookmarks whose folderId equals the argument,
// newest-first.
func (s *BookmarkStore) GetByFolder(ctx context.Context, folderID int) []models.Bookmark {
	resp, err := s.client.FetchRecords(ctx, record.TableBookmarks, &record.Query{
		Where:   []record.Where{{Field: "folder_id_c", Operator: record.OpEqualTo, Value: folderID}},
		OrderBy: newestFirst,
	})
	if err != nil || !resp.Success {
		s.logFailure(fmt.Sprintf("failed to fetch bookmarks for folder %d", folderID), resp, err)
		return []models.Bookmark{}
	}
	return bookmarksFromResults(resp.Results)
}

// CountByFolder returns the number of bookmarks currently in the folder.
func (s *BookmarkStore) CountByFolder(ctx context.Context, folderID int) int {
	return len(s.GetByFolder(ctx, folderID))
}

// Create persists a new bookmark and returns it with the server-assigned
// fields populated, or nil if the backend rejects the write. Failed records
// in the batch response are reported individually on the notification
// channel.
func (s *BookmarkStore) Create(ctx context.Context, in models.BookmarkInput) *models.Bookmark {
	if in.Title == "" {
		in.Title = models.DefaultBookmarkTitle
	}
	if in.FolderID == 0 {
		in.FolderID = models.DefaultFolderID
	}

	resp, err := s.client.CreateRecords(ctx, record.TableBookmarks, []map[string]interface{}{in.ToRecord()})
	if err != nil {
		s.fail("Failed to save bookmark. Please try again.", resp, err)
		return nil
	}

	created := s.firstSuccess(resp, "create bookmark")
	if created == nil {
		return nil
	}
	s.notifier.Success("Bookmark added successfully!")
	b := models.BookmarkFromRecord(created)
	return &b
}

// Update overwrites every writable field of the bookmark with the values in
// the input; fields the caller did not re-send are written as zero values.
// Returns the updated record, or nil if the id does not exist or the write
// fails.
func (s *BookmarkStore) Update(ctx context.Context, id int, in models.BookmarkInput) *models.Bookmark {
	payload := in.ToRecord()
	payload[record.FieldID] = id

	resp, err := s.client.UpdateRecords(ctx, record.TableBookmarks, []map[string]interface{}{payload})
	if err != nil {
		s.fail("Failed to save bookmark. Please try again.", resp, err)
		return nil
	}

	updated := s.firstSuccess(resp, "update bookmark")
	if updated == nil {
		return nil
	}
	s.notifier.Success("Bookmark updated successfully!")
	b := models.BookmarkFromRecord(updated)
	return &b
}

// Delete removes the bookmark. A missing id is treated as failure (false),
// not an error, and produces no notification noise.
func (s *BookmarkStore) Delete(ctx context.Context, id int) bool {
	resp, err := s.client.DeleteRecords(ctx, record.TableBookmarks, []int{id})
	if err != nil {
		s.fail("Failed to delete bookmark. Please try again.", resp, err)
		return false
	}
	for _, res := range resp.Results {
		if res.Success {
			s.notifier.Success("Bookmark deleted successfully!")
			return true
		}
		if res.NotFound() {
			return false
		}
		s.notifier.Error("Failed to delete bookmark. Please try again.")
		s.log.Error("bookmark delete rejected", logger.Int("id", id), logger.String("message", res.Message))
	}
	return false
}

// Search returns bookmarks whose title, description, URL, or any tag
// contains the query, case-insensitively, newest-first.
func (s *BookmarkStore) Search(ctx context.Context, query string) []models.Bookmark {
	all := s.GetAll(ctx)
	out := make([]models.Bookmark, 0, len(all))
	for _, b := range all {
		if b.Matches(query) {
			out = append(out, b)
		}
	}
	return out
}

// GetByTag returns bookmarks carrying the tag (case-insensitive exact
// match), newest-first.
func (s *BookmarkStore) GetByTag(ctx context.Context, tag string) []models.Bookmark {
	all := s.GetAll(ctx)
	out := make([]models.Bookmark, 0, len(all))
	for _, b := range all {
		if b.HasTag(tag) {
			out = append(out, b)
		}
	}
	return out
}

// GetAllTags returns the deduplicated, lexicographically sorted list of
// every tag across all bookmarks.
func (s *BookmarkStore) GetAllTags(ctx context.Context) []string {
	resp, err := s.client.FetchRecords(ctx, record.TableBookmarks, &record.Query{Fields: []string{"tags_c"}})
	if err != nil || !resp.Success {
		s.logFailure("failed to fetch tags", resp, err)
		return []string{}
	}

	seen := make(map[string]bool)
	tags := []string{}
	for _, res := range resp.Results {
		if res.Data == nil {
			continue
		}
		raw, _ := res.Data["tags_c"].(string)
		for _, tag := range models.ParseTags(raw) {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// ToggleFavorite flips the bookmark's favorite flag and returns the updated
// record, or nil on failure. The flag is read and then written back
// negated; if the write fails the stored record is untouched.
func (s *BookmarkStore) ToggleFavorite(ctx context.Context, id int) *models.Bookmark {
	current := s.GetById(ctx, id)
	if current == nil {
		return nil
	}

	payload := map[string]interface{}{
		record.FieldID:  id,
		"is_favorite_c": !current.IsFavorite,
	}
	resp, err := s.client.UpdateRecords(ctx, record.TableBookmarks, []map[string]interface{}{payload})
	if err != nil {
		s.fail("Failed to update favorite. Please try again.", resp, err)
		return nil
	}

	updated := s.firstSuccess(resp, "toggle favorite")
	if updated == nil {
		return nil
	}
	b := models.BookmarkFromRecord(updated)
	if b.IsFavorite {
		s.notifier.Success("Added to favorites")
	} else {
		s.notifier.Success("Removed from favorites")
	}
	return &b
}

// firstSuccess picks the first successful record out of a batch response
// and reports every failed record's field-level errors individually.
func (s *BookmarkStore) firstSuccess(resp *record.Response, op string) map[string]interface{} {
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
		if len(res.Errors) > 0 {
			details := make([]string, 0, len(res.Errors))
			for _, fe := range res.Errors {
				details = append(details, fmt.Sprintf("%s: %s", fe.FieldLabel, fe.Message))
			}
			s.notifier.Error(strings.Join(details, ", "))
		} else if res.Message != "" {
			s.notifier.Error(res.Message)
		}
	}
	return data
}

func (s *BookmarkStore) fail(userMessage string, resp *record.Response, err error) {
	s.logFailure(userMessage, resp, err)
	s.notifier.Error(userMessage)
}

func (s *BookmarkStore) logFailure(msg string, resp *record.Response, err error) {
	if err != nil {
		s.log.Error(msg, logger.Error(err))
		return
	}
	if resp != nil {
		s.log.Error(msg, logger.String("message", resp.Message))
	}
}

func bookmarksFromResults(results []record.Result) []models.Bookmark {
	out := make([]models.Bookmark, 0, len(results))
	for _, res := range results {
		if res.Success && res.Data != nil {
			out = append(out, models.BookmarkFromRecord(res.Data))
		}
	}
	return out
}
