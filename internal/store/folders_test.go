package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bookmark-hub-example/internal/logger"
	"go-bookmark-hub-example/internal/models"
	"go-bookmark-hub-example/internal/notify"
	"go-bookmark-hub-example/internal/record"
)

// flakyClient passes everything through to the wrapped client except the
// update call numbered failOn, which fails at the transport level.
type flakyClient struct {
	record.Client
	calls  int
	failOn int
}

func (f *flakyClient) UpdateRecords(ctx context.Context, table string, records []map[string]interface{}) (*record.Response, error) {
	f.calls++
	if f.calls == f.failOn {
		return nil, errors.New("record store unreachable")
	}
	return f.Client.UpdateRecords(ctx, table, records)
}

type folderFixture struct {
	client    record.Client
	bookmarks *BookmarkStore
	folders   *FolderStore
	rec       *notify.Recorder
}

func newFolderFixture(t *testing.T, client record.Client) folderFixture {
	t.Helper()
	if client == nil {
		client = record.NewMemoryClient()
	}
	rec := notify.NewRecorder()
	bookmarks := NewBookmarkStore(client, logger.Nop(), rec)
	folders := NewFolderStore(client, bookmarks, logger.Nop(), rec)
	require.NoError(t, EnsureDefaultFolder(context.Background(), client, logger.Nop()))
	return folderFixture{client: client, bookmarks: bookmarks, folders: folders, rec: rec}
}

func defaultFolders(folders []models.Folder) []int {
	var ids []int
	for _, f := range folders {
		if f.IsDefault {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

func TestEnsureDefaultFolderSeedsOnce(t *testing.T) {
	fx := newFolderFixture(t, nil)
	ctx := context.Background()

	all := fx.folders.GetAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "My Bookmarks", all[0].Name)
	assert.True(t, all[0].IsDefault)

	// A second pass over a non-empty table seeds nothing.
	require.NoError(t, EnsureDefaultFolder(ctx, fx.client, logger.Nop()))
	assert.Len(t, fx.folders.GetAll(ctx), 1)
}

func TestFolderCreate(t *testing.T) {
	fx := newFolderFixture(t, nil)
	ctx := context.Background()

	created := fx.folders.Create(ctx, models.FolderInput{Name: "Work", Color: "#ff0000", BookmarkCount: 5})
	require.NotNil(t, created)
	assert.Equal(t, "Work", created.Name)
	assert.Equal(t, "#ff0000", created.Color)
	assert.Equal(t, 0, created.BookmarkCount, "counts always start at zero")
	assert.False(t, created.IsDefault)

	assert.Contains(t, fx.rec.Messages(notify.TypeSuccess), "Folder created successfully!")
}

func TestFolderCreateAppliesDefaults(t *testing.T) {
	fx := newFolderFixture(t, nil)

	created := fx.folders.Create(context.Background(), models.FolderInput{})
	require.NotNil(t, created)
	assert.Equal(t, models.DefaultFolderName, created.Name)
	assert.Equal(t, models.DefaultFolderColor, created.Color)
}

func TestFolderCountsRecomputedOnRead(t *testing.T) {
	fx := newFolderFixture(t, nil)
	ctx := context.Background()

	work := fx.folders.Create(ctx, models.FolderInput{Name: "Work"})
	require.NotNil(t, work)

	// Bookmarks land in folders without any count bookkeeping running.
	fx.bookmarks.Create(ctx, models.BookmarkInput{Title: "a", URL: "https://a.example", FolderID: work.ID})
	fx.bookmarks.Create(ctx, models.BookmarkInput{Title: "b", URL: "https://b.example", FolderID: work.ID})
	fx.bookmarks.Create(ctx, models.BookmarkInput{Title: "c", URL: "https://c.example", FolderID: 1})

	byID := fx.folders.GetById(ctx, work.ID)
	require.NotNil(t, byID)
	assert.Equal(t, 2, byID.BookmarkCount)

	for _, f := range fx.folders.GetAll(ctx) {
		switch f.ID {
		case 1:
			assert.Equal(t, 1, f.BookmarkCount)
		case work.ID:
			assert.Equal(t, 2, f.BookmarkCount)
		}
	}
}

func TestFolderUpdateOverwritesFullFieldSet(t *testing.T) {
	fx := newFolderFixture(t, nil)
	ctx := context.Background()

	work := fx.folders.Create(ctx, models.FolderInput{Name: "Work", Color: "#ff0000"})
	require.NotNil(t, work)
	require.True(t, fx.folders.SetDefaultFolder(ctx, work.ID))

	// Re-sending only the name drops the default flag along with the color.
	updated := fx.folders.Update(ctx, work.ID, models.FolderInput{Name: "Renamed"})
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.IsDefault)

	assert.Empty(t, defaultFolders(fx.folders.GetAll(ctx)))
}

func TestSetDefaultFolderMovesTheFlag(t *testing.T) {
	fx := newFolderFixture(t, nil)
	ctx := context.Background()

	work := fx.folders.Create(ctx, models.FolderInput{Name: "Work"})
	require.NotNil(t, work)

	require.True(t, fx.folders.SetDefaultFolder(ctx, work.ID))

	defaults := defaultFolders(fx.folders.GetAll(ctx))
	assert.Equal(t, []int{work.ID}, defaults, "exactly one default after a successful call")
	assert.Contains(t, fx.rec.Messages(notify.TypeSuccess), "Default folder updated")
}

func TestSetDefaultFolderMissingTarget(t *testing.T) {
	fx := newFolderFixture(t, nil)

	assert.False(t, fx.folders.SetDefaultFolder(context.Background(), 404))
	assert.Contains(t, fx.rec.Messages(notify.TypeError), "Failed to set default folder. Please try again.")
}

func TestSetDefaultFolderMidFailureLeavesNoDefault(t *testing.T) {
	flaky := &flakyClient{Client: record.NewMemoryClient()}
	fx := newFolderFixture(t, flaky)
	ctx := context.Background()

	work := fx.folders.Create(ctx, models.FolderInput{Name: "Work"})
	require.NotNil(t, work)

	// The previous default is unset on the first update call; the second,
	// which would flag the target, fails in between.
	flaky.failOn = flaky.calls + 2
	assert.False(t, fx.folders.SetDefaultFolder(ctx, work.ID))
	assert.Contains(t, fx.rec.Messages(notify.TypeError), "Failed to set default folder. Please try again.")

	assert.Empty(t, defaultFolders(fx.folders.GetAll(ctx)), "a mid-sequence failure can leave no default")

	// The degraded state is recoverable: the next successful call ends with
	// exactly one default again.
	require.True(t, fx.folders.SetDefaultFolder(ctx, work.ID))
	assert.Equal(t, []int{work.ID}, defaultFolders(fx.folders.GetAll(ctx)))
}

func TestFolderDeleteReassignsBookmarks(t *testing.T) {
	fx := newFolderFixture(t, nil)
	ctx := context.Background()

	work := fx.folders.Create(ctx, models.FolderInput{Name: "Work"})
	require.NotNil(t, work)

	a := fx.bookmarks.Create(ctx, models.BookmarkInput{Title: "a", URL: "https://a.example", FolderID: work.ID})
	b := fx.bookmarks.Create(ctx, models.BookmarkInput{Title: "b", URL: "https://b.example", FolderID: work.ID})
	require.NotNil(t, a)
	require.NotNil(t, b)

	require.True(t, fx.folders.Delete(ctx, work.ID))

	assert.Nil(t, fx.folders.GetById(ctx, work.ID))
	for _, id := range []int{a.ID, b.ID} {
		moved := fx.bookmarks.GetById(ctx, id)
		require.NotNil(t, moved)
		assert.Equal(t, 1, moved.FolderID, "orphaned bookmarks move to the default folder")
	}

	def := fx.folders.GetById(ctx, 1)
	require.NotNil(t, def)
	assert.Equal(t, 2, def.BookmarkCount)
	assert.Contains(t, fx.rec.Messages(notify.TypeSuccess), "Folder deleted successfully!")
}

func TestFolderDeleteDefaultRefused(t *testing.T) {
	fx := newFolderFixture(t, nil)
	ctx := context.Background()

	assert.False(t, fx.folders.Delete(ctx, 1))
	assert.NotNil(t, fx.folders.GetById(ctx, 1))
	assert.Contains(t, fx.rec.Messages(notify.TypeError), "The default folder cannot be deleted.")
}

func TestFolderDeleteMissingIsQuiet(t *testing.T) {
	fx := newFolderFixture(t, nil)

	before := len(fx.rec.Events())
	assert.False(t, fx.folders.Delete(context.Background(), 404))
	assert.Len(t, fx.rec.Events(), before)
}

func TestUpdateBookmarkCountPersists(t *testing.T) {
	fx := newFolderFixture(t, nil)
	ctx := context.Background()

	work := fx.folders.Create(ctx, models.FolderInput{Name: "Work"})
	require.NotNil(t, work)
	fx.bookmarks.Create(ctx, models.BookmarkInput{Title: "a", URL: "https://a.example", FolderID: work.ID})

	refreshed := fx.folders.UpdateBookmarkCount(ctx, work.ID)
	require.NotNil(t, refreshed)
	assert.Equal(t, 1, refreshed.BookmarkCount)

	// The persisted record now carries the count directly.
	resp, err := fx.client.GetRecordByID(ctx, record.TableFolders, work.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, 1, resp.Data["bookmark_count_c"])
}
