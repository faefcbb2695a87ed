package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-bookmark-hub-example/internal/models"
)

func sample() []models.Bookmark {
	return []models.Bookmark{
		{ID: 3, Title: "Go Blog", URL: "https://go.dev/blog", Tags: []string{"go", "news"}},
		{ID: 2, Title: "Rust Book", URL: "https://doc.rust-lang.org", Tags: []string{"rust"}},
		{ID: 1, Title: "Go Playground", URL: "https://go.dev/play", Tags: []string{"go", "tools"}},
	}
}

func TestFilterNoCriteriaReturnsAll(t *testing.T) {
	in := sample()
	assert.Equal(t, in, Filter(in, "", ""))
}

func TestFilterByTag(t *testing.T) {
	out := Filter(sample(), "", "go")

	assert.Len(t, out, 2)
	assert.Equal(t, 3, out[0].ID)
	assert.Equal(t, 1, out[1].ID)
}

func TestFilterBySearch(t *testing.T) {
	out := Filter(sample(), "blog", "")

	assert.Len(t, out, 1)
	assert.Equal(t, "Go Blog", out[0].Title)
}

func TestFilterSearchTrimsWhitespace(t *testing.T) {
	assert.Len(t, Filter(sample(), "  blog  ", ""), 1)
	assert.Len(t, Filter(sample(), "   ", ""), 3)
}

func TestFilterComposesByAnd(t *testing.T) {
	out := Filter(sample(), "play", "go")

	assert.Len(t, out, 1)
	assert.Equal(t, "Go Playground", out[0].Title)

	// Each criterion matches something alone but nothing matches both.
	assert.Empty(t, Filter(sample(), "rust", "go"))
}

func TestFilterPreservesOrder(t *testing.T) {
	in := sample()
	out := Filter(in, "go", "")

	for i := 1; i < len(out); i++ {
		assert.Greater(t, out[i-1].ID, out[i].ID, "input order must survive filtering")
	}
}

func TestFilterNoMatches(t *testing.T) {
	out := Filter(sample(), "nonexistent", "")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
