package record

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryClient is an in-process record store. It backs the "memory" backend
// mode and the store tests.
type MemoryClient struct {
	mu     sync.RWMutex
	tables map[string]*memTable
}

type memTable struct {
	nextID int
	rows   map[int]map[string]interface{}
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{tables: make(map[string]*memTable)}
}

func (c *MemoryClient) table(name string) *memTable {
	t, ok := c.tables[name]
	if !ok {
		t = &memTable{nextID: 1, rows: make(map[int]map[string]interface{})}
		c.tables[name] = t
	}
	return t
}

func cloneRow(row map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func (c *MemoryClient) FetchRecords(ctx context.Context, table string, q *Query) (*Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[table]
	if !ok {
		return &Response{Success: true}, nil
	}

	rows := make([]map[string]interface{}, 0, len(t.rows))
	for _, row := range t.rows {
		if q == nil || matches(row, q.Where) {
			rows = append(rows, cloneRow(row))
		}
	}

	if q != nil && len(q.OrderBy) > 0 {
		sortRows(rows, q.OrderBy)
	} else {
		// Deterministic default ordering.
		sort.Slice(rows, func(i, j int) bool {
			return toFloat(rows[i][FieldID]) < toFloat(rows[j][FieldID])
		})
	}

	if q != nil {
		if q.Offset > 0 {
			if q.Offset >= len(rows) {
				rows = nil
			} else {
				rows = rows[q.Offset:]
			}
		}
		if q.Limit > 0 && q.Limit < len(rows) {
			rows = rows[:q.Limit]
		}
		if len(q.Fields) > 0 {
			rows = projectRows(rows, q.Fields)
		}
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, Result{Success: true, Data: row})
	}
	return &Response{Success: true, Results: results}, nil
}

func (c *MemoryClient) GetRecordByID(ctx context.Context, table string, id int, q *Query) (*Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[table]
	if !ok {
		return &Response{Success: true}, nil
	}
	row, ok := t.rows[id]
	if !ok {
		return &Response{Success: true}, nil
	}
	return &Response{Success: true, Data: cloneRow(row)}, nil
}

func (c *MemoryClient) CreateRecords(ctx context.Context, table string, records []map[string]interface{}) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(table)
	now := time.Now().UTC()

	results := make([]Result, 0, len(records))
	for _, payload := range records {
		row := cloneRow(payload)
		row[FieldID] = t.nextID
		row[FieldCreatedOn] = now
		row[FieldModifiedOn] = now
		t.rows[t.nextID] = row
		t.nextID++
		results = append(results, Result{Success: true, Data: cloneRow(row)})
	}
	return &Response{Success: true, Results: results}, nil
}

func (c *MemoryClient) UpdateRecords(ctx context.Context, table string, records []map[string]interface{}) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(table)
	now := time.Now().UTC()

	allOK := true
	results := make([]Result, 0, len(records))
	for _, payload := range records {
		id := int(toFloat(payload[FieldID]))
		row, ok := t.rows[id]
		if !ok {
			allOK = false
			results = append(results, Result{Success: false, Message: MsgNotFound})
			continue
		}
		for k, v := range payload {
			if k == FieldID || k == FieldCreatedOn {
				continue
			}
			row[k] = v
		}
		row[FieldModifiedOn] = now
		results = append(results, Result{Success: true, Data: cloneRow(row)})
	}
	return &Response{Success: allOK, Results: results}, nil
}

func (c *MemoryClient) DeleteRecords(ctx context.Context, table string, ids []int) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(table)

	allOK := true
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		if _, ok := t.rows[id]; !ok {
			allOK = false
			results = append(results, Result{Success: false, Message: MsgNotFound})
			continue
		}
		delete(t.rows, id)
		results = append(results, Result{Success: true})
	}
	return &Response{Success: allOK, Results: results}, nil
}

func matches(row map[string]interface{}, conds []Where) bool {
	for _, cond := range conds {
		val := row[cond.Field]
		switch cond.Operator {
		case OpEqualTo:
			if !looseEqual(val, cond.Value) {
				return false
			}
		case OpContains:
			have := strings.ToLower(fmt.Sprint(val))
			want := strings.ToLower(fmt.Sprint(cond.Value))
			if !strings.Contains(have, want) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func looseEqual(a, b interface{}) bool {
	switch a.(type) {
	case int, int32, int64, uint, float32, float64:
		return toFloat(a) == toFloat(b)
	}
	switch b.(type) {
	case int, int32, int64, uint, float32, float64:
		return toFloat(a) == toFloat(b)
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func sortRows(rows []map[string]interface{}, orderBy []Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, ord := range orderBy {
			cmp := compareValues(rows[i][ord.Field], rows[j][ord.Field])
			if cmp == 0 {
				// Ids break ties so newest-first ordering is total.
				cmp = compareValues(rows[i][FieldID], rows[j][FieldID])
			}
			if cmp == 0 {
				continue
			}
			if ord.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareValues(a, b interface{}) int {
	if at, ok := a.(time.Time); ok {
		bt, _ := b.(time.Time)
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}
	switch a.(type) {
	case int, int32, int64, uint, float32, float64:
		af, bf := toFloat(a), toFloat(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func projectRows(rows []map[string]interface{}, fields []string) []map[string]interface{} {
	keep := make(map[string]bool, len(fields)+1)
	keep[FieldID] = true
	for _, f := range fields {
		keep[f] = true
	}
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		projected := make(map[string]interface{}, len(keep))
		for k, v := range row {
			if keep[k] {
				projected[k] = v
			}
		}
		out = append(out, projected)
	}
	return out
}
