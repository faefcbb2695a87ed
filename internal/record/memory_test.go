package record

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignsSystemFields(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	resp, err := c.CreateRecords(ctx, TableBookmarks, []map[string]interface{}{
		{"title_c": "first"},
		{"title_c": "second"},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Results, 2)

	assert.Equal(t, 1, resp.Results[0].Data[FieldID])
	assert.Equal(t, 2, resp.Results[1].Data[FieldID])
	assert.NotNil(t, resp.Results[0].Data[FieldCreatedOn])
	assert.NotNil(t, resp.Results[0].Data[FieldModifiedOn])
}

func TestGetRecordByIDMissingIsNotAnError(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	resp, err := c.GetRecordByID(ctx, TableBookmarks, 99, nil)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Data)
}

func TestFetchRecordsFiltersAndOrders(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	_, err := c.CreateRecords(ctx, TableBookmarks, []map[string]interface{}{
		{"title_c": "a", "folder_id_c": 1},
		{"title_c": "b", "folder_id_c": 2},
		{"title_c": "c", "folder_id_c": 1},
	})
	require.NoError(t, err)

	resp, err := c.FetchRecords(ctx, TableBookmarks, &Query{
		Where:   []Where{{Field: "folder_id_c", Operator: OpEqualTo, Value: 1}},
		OrderBy: []Order{{Field: FieldCreatedOn, Descending: true}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	// Equal timestamps fall back to the id so newest-first stays total.
	assert.Equal(t, 3, resp.Results[0].Data[FieldID])
	assert.Equal(t, 1, resp.Results[1].Data[FieldID])
}

func TestFetchRecordsEqualToMatchesAcrossNumericTypes(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	_, err := c.CreateRecords(ctx, TableBookmarks, []map[string]interface{}{
		{"folder_id_c": float64(2)},
	})
	require.NoError(t, err)

	resp, err := c.FetchRecords(ctx, TableBookmarks, &Query{
		Where: []Where{{Field: "folder_id_c", Operator: OpEqualTo, Value: 2}},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
}

func TestFetchRecordsProjectionKeepsID(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	_, err := c.CreateRecords(ctx, TableBookmarks, []map[string]interface{}{
		{"title_c": "a", "tags_c": "go,web"},
	})
	require.NoError(t, err)

	resp, err := c.FetchRecords(ctx, TableBookmarks, &Query{Fields: []string{"tags_c"}})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	row := resp.Results[0].Data
	assert.Equal(t, "go,web", row["tags_c"])
	assert.Equal(t, 1, row[FieldID])
	assert.NotContains(t, row, "title_c")
}

func TestUpdateRecordsMergesPayload(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	created, err := c.CreateRecords(ctx, TableBookmarks, []map[string]interface{}{
		{"title_c": "before", "is_favorite_c": false},
	})
	require.NoError(t, err)
	id := created.Results[0].Data[FieldID].(int)

	resp, err := c.UpdateRecords(ctx, TableBookmarks, []map[string]interface{}{
		{FieldID: id, "is_favorite_c": true},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	row := resp.Results[0].Data
	assert.Equal(t, true, row["is_favorite_c"])
	assert.Equal(t, "before", row["title_c"], "untouched fields survive a partial payload")
}

func TestUpdateRecordsMissingID(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	resp, err := c.UpdateRecords(ctx, TableBookmarks, []map[string]interface{}{
		{FieldID: 42, "title_c": "ghost"},
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	require.Len(t, resp.Results, 1)
	assert.False(t, resp.Results[0].Success)
	assert.True(t, resp.Results[0].NotFound())
}

func TestDeleteRecords(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	_, err := c.CreateRecords(ctx, TableBookmarks, []map[string]interface{}{
		{"title_c": "doomed"},
	})
	require.NoError(t, err)

	resp, err := c.DeleteRecords(ctx, TableBookmarks, []int{1})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	again, err := c.DeleteRecords(ctx, TableBookmarks, []int{1})
	require.NoError(t, err)
	assert.False(t, again.Success)
	assert.True(t, again.Results[0].NotFound())
}

func TestFetchRecordsLimitOffset(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	_, err := c.CreateRecords(ctx, TableBookmarks, []map[string]interface{}{
		{"title_c": "a"}, {"title_c": "b"}, {"title_c": "c"},
	})
	require.NoError(t, err)

	resp, err := c.FetchRecords(ctx, TableBookmarks, &Query{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 2, resp.Results[0].Data[FieldID])
}
