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

// errClient fails every call at the transport level.
type errClient struct{}

var errDown = errors.New("record store unreachable")

func (errClient) FetchRecords(context.Context, string, *record.Query) (*record.Response, error) {
	return nil, errDown
}

func (errClient) GetRecordByID(context.Context, string, int, *record.Query) (*record.Response, error) {
	return nil, errDown
}

func (errClient) CreateRecords(context.Context, string, []map[string]interface{}) (*record.Response, error) {
	return nil, errDown
}

func (errClient) UpdateRecords(context.Context, string, []map[string]interface{}) (*record.Response, error) {
	return nil, errDown
}

func (errClient) DeleteRecords(context.Context, string, []int) (*record.Response, error) {
	return nil, errDown
}

func newBookmarkFixture(t *testing.T) (*BookmarkStore, *notify.Recorder) {
	t.Helper()
	rec := notify.NewRecorder()
	return NewBookmarkStore(record.NewMemoryClient(), logger.Nop(), rec), rec
}

func TestBookmarkCreateAndGet(t *testing.T) {
	s, rec := newBookmarkFixture(t)
	ctx := context.Background()

	created := s.Create(ctx, models.BookmarkInput{
		Title:    "Go Blog",
		URL:      "https://go.dev/blog",
		FolderID: 2,
		Tags:     []string{"go", "news"},
	})
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Go Blog", created.Title)
	assert.Equal(t, 2, created.FolderID)
	assert.Equal(t, []string{"go", "news"}, created.Tags)
	assert.False(t, created.CreatedAt.IsZero())

	got := s.GetById(ctx, created.ID)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	assert.Equal(t, []string{"Bookmark added successfully!"}, rec.Messages(notify.TypeSuccess))
}

func TestBookmarkCreateAppliesDefaults(t *testing.T) {
	s, _ := newBookmarkFixture(t)

	created := s.Create(context.Background(), models.BookmarkInput{URL: "https://example.com"})
	require.NotNil(t, created)
	assert.Equal(t, models.DefaultBookmarkTitle, created.Title)
	assert.Equal(t, models.DefaultFolderID, created.FolderID)
}

func TestBookmarkGetAllNewestFirst(t *testing.T) {
	s, _ := newBookmarkFixture(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		require.NotNil(t, s.Create(ctx, models.BookmarkInput{Title: title, URL: "https://example.com"}))
	}

	all := s.GetAll(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title)
	assert.Equal(t, "second", all[1].Title)
	assert.Equal(t, "first", all[2].Title)
}

func TestBookmarkGetByIdMissing(t *testing.T) {
	s, rec := newBookmarkFixture(t)

	assert.Nil(t, s.GetById(context.Background(), 404))
	assert.Empty(t, rec.Events(), "absence is not an error and produces no notifications")
}

func TestBookmarkUpdateOverwritesFullFieldSet(t *testing.T) {
	s, rec := newBookmarkFixture(t)
	ctx := context.Background()

	created := s.Create(ctx, models.BookmarkInput{
		Title:       "Go Blog",
		URL:         "https://go.dev/blog",
		Description: "release notes",
		Tags:        []string{"go", "news"},
		IsFavorite:  true,
	})
	require.NotNil(t, created)

	// The caller re-sends only the title; everything else is overwritten
	// with zero values.
	updated := s.Update(ctx, created.ID, models.BookmarkInput{Title: "Renamed", URL: "https://go.dev/blog"})
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, []string{}, updated.Tags)
	assert.False(t, updated.IsFavorite)
	assert.Equal(t, models.DefaultFolderID, updated.FolderID)

	assert.Contains(t, rec.Messages(notify.TypeSuccess), "Bookmark updated successfully!")
}

func TestBookmarkUpdateMissingIDReturnsNil(t *testing.T) {
	s, rec := newBookmarkFixture(t)

	assert.Nil(t, s.Update(context.Background(), 404, models.BookmarkInput{Title: "ghost"}))
	assert.Empty(t, rec.Messages(notify.TypeError))
}

func TestBookmarkDelete(t *testing.T) {
	s, rec := newBookmarkFixture(t)
	ctx := context.Background()

	created := s.Create(ctx, models.BookmarkInput{Title: "doomed", URL: "https://example.com"})
	require.NotNil(t, created)

	assert.True(t, s.Delete(ctx, created.ID))
	assert.Nil(t, s.GetById(ctx, created.ID))
	assert.Contains(t, rec.Messages(notify.TypeSuccess), "Bookmark deleted successfully!")

	// Deleting again is a quiet false, not an error.
	before := len(rec.Events())
	assert.False(t, s.Delete(ctx, created.ID))
	assert.Len(t, rec.Events(), before)
}

func TestBookmarkSearch(t *testing.T) {
	s, _ := newBookmarkFixture(t)
	ctx := context.Background()

	s.Create(ctx, models.BookmarkInput{Title: "Go Blog", URL: "https://go.dev/blog", Tags: []string{"go"}})
	s.Create(ctx, models.BookmarkInput{Title: "Rust Book", URL: "https://doc.rust-lang.org", Tags: []string{"rust"}})

	byTitle := s.Search(ctx, "blog")
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Go Blog", byTitle[0].Title)

	byTag := s.Search(ctx, "RUST")
	require.Len(t, byTag, 1)
	assert.Equal(t, "Rust Book", byTag[0].Title)

	assert.Empty(t, s.Search(ctx, "python"))
}

func TestBookmarkGetByTag(t *testing.T) {
	s, _ := newBookmarkFixture(t)
	ctx := context.Background()

	s.Create(ctx, models.BookmarkInput{Title: "a", URL: "https://a.example", Tags: []string{"Go", "web"}})
	s.Create(ctx, models.BookmarkInput{Title: "b", URL: "https://b.example", Tags: []string{"golang"}})

	out := s.GetByTag(ctx, "go")
	require.Len(t, out, 1, "tag match is exact, not substring")
	assert.Equal(t, "a", out[0].Title)
}

func TestBookmarkGetAllTags(t *testing.T) {
	s, _ := newBookmarkFixture(t)
	ctx := context.Background()

	s.Create(ctx, models.BookmarkInput{Title: "a", URL: "https://a.example", Tags: []string{"web", "go"}})
	s.Create(ctx, models.BookmarkInput{Title: "b", URL: "https://b.example", Tags: []string{"go", "tools"}})

	assert.Equal(t, []string{"go", "tools", "web"}, s.GetAllTags(ctx))
}

func TestBookmarkToggleFavorite(t *testing.T) {
	s, rec := newBookmarkFixture(t)
	ctx := context.Background()

	created := s.Create(ctx, models.BookmarkInput{Title: "a", URL: "https://a.example"})
	require.NotNil(t, created)
	require.False(t, created.IsFavorite)

	on := s.ToggleFavorite(ctx, created.ID)
	require.NotNil(t, on)
	assert.True(t, on.IsFavorite)
	assert.Equal(t, created.Title, on.Title, "the toggle only touches the favorite flag")

	off := s.ToggleFavorite(ctx, created.ID)
	require.NotNil(t, off)
	assert.False(t, off.IsFavorite)

	success := rec.Messages(notify.TypeSuccess)
	assert.Contains(t, success, "Added to favorites")
	assert.Contains(t, success, "Removed from favorites")

	assert.Nil(t, s.ToggleFavorite(ctx, 404))
}

func TestBookmarkStoreBackendDown(t *testing.T) {
	rec := notify.NewRecorder()
	s := NewBookmarkStore(errClient{}, logger.Nop(), rec)
	ctx := context.Background()

	all := s.GetAll(ctx)
	assert.NotNil(t, all)
	assert.Empty(t, all)
	assert.Equal(t, []string{"Failed to load bookmarks"}, rec.Messages(notify.TypeError))

	assert.Nil(t, s.GetById(ctx, 1))
	assert.Nil(t, s.Create(ctx, models.BookmarkInput{Title: "x", URL: "https://x.example"}))
	assert.Nil(t, s.Update(ctx, 1, models.BookmarkInput{Title: "x"}))
	assert.False(t, s.Delete(ctx, 1))
	assert.Empty(t, s.GetAllTags(ctx))

	errs := rec.Messages(notify.TypeError)
	assert.Contains(t, errs, "Failed to save bookmark. Please try again.")
	assert.Contains(t, errs, "Failed to delete bookmark. Please try again.")
}
