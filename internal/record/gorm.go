package record

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-bookmark-hub-example/internal/logger"
)

// GormClient is the production record-store adapter, backed by Postgres
// through GORM.
type GormClient struct {
	db  *gorm.DB
	log logger.Logger
}

func NewGormClient(db *gorm.DB, log logger.Logger) *GormClient {
	return &GormClient{db: db, log: log}
}

// columnFor maps logical record fields to physical columns. The custom
// *_c fields are stored under their own names; only the system fields
// differ.
func columnFor(field string) string {
	switch field {
	case FieldID:
		return "id"
	case FieldCreatedOn:
		return "created_on"
	case FieldModifiedOn:
		return "modified_on"
	default:
		return field
	}
}

func (c *GormClient) session(ctx context.Context, q *Query) (*gorm.DB, error) {
	if c.db == nil {
		return nil, errors.New("database connection not initialized")
	}
	tx := c.db.WithContext(ctx)
	if q == nil {
		return tx, nil
	}
	for _, cond := range q.Where {
		col := columnFor(cond.Field)
		switch cond.Operator {
		case OpEqualTo:
			tx = tx.Where(fmt.Sprintf("%s = ?", col), cond.Value)
		case OpContains:
			tx = tx.Where(fmt.Sprintf("%s ILIKE ?", col), fmt.Sprintf("%%%v%%", cond.Value))
		default:
			return nil, fmt.Errorf("unsupported operator: %s", cond.Operator)
		}
	}
	for _, ord := range q.OrderBy {
		dir := "ASC"
		if ord.Descending {
			dir = "DESC"
		}
		tx = tx.Order(fmt.Sprintf("%s %s, id %s", columnFor(ord.Field), dir, dir))
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx, nil
}

func (c *GormClient) FetchRecords(ctx context.Context, table string, q *Query) (*Response, error) {
	tx, err := c.session(ctx, q)
	if err != nil {
		return nil, err
	}

	var results []Result
	switch table {
	case TableBookmarks:
		var rows []BookmarkRecord
		if err := tx.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch %s records: %w", table, err)
		}
		for i := range rows {
			results = append(results, Result{Success: true, Data: bookmarkRowToMap(&rows[i])})
		}
	case TableFolders:
		var rows []FolderRecord
		if err := tx.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch %s records: %w", table, err)
		}
		for i := range rows {
			results = append(results, Result{Success: true, Data: folderRowToMap(&rows[i])})
		}
	default:
		return &Response{Success: false, Message: fmt.Sprintf("unknown table: %s", table)}, nil
	}

	return &Response{Success: true, Results: results}, nil
}

func (c *GormClient) GetRecordByID(ctx context.Context, table string, id int, q *Query) (*Response, error) {
	tx, err := c.session(ctx, nil)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	switch table {
	case TableBookmarks:
		var row BookmarkRecord
		err = tx.Where("id = ?", id).First(&row).Error
		if err == nil {
			data = bookmarkRowToMap(&row)
		}
	case TableFolders:
		var row FolderRecord
		err = tx.Where("id = ?", id).First(&row).Error
		if err == nil {
			data = folderRowToMap(&row)
		}
	default:
		return &Response{Success: false, Message: fmt.Sprintf("unknown table: %s", table)}, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Response{Success: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s record %d: %w", table, id, err)
	}
	return &Response{Success: true, Data: data}, nil
}

func (c *GormClient) CreateRecords(ctx context.Context, table string, records []map[string]interface{}) (*Response, error) {
	tx, err := c.session(ctx, nil)
	if err != nil {
		return nil, err
	}

	allOK := true
	results := make([]Result, 0, len(records))
	for _, payload := range records {
		var result Result
		switch table {
		case TableBookmarks:
			row := &BookmarkRecord{}
			applyBookmarkPayload(row, payload)
			if err := tx.Create(row).Error; err != nil {
				result = Result{Success: false, Message: err.Error()}
			} else {
				result = Result{Success: true, Data: bookmarkRowToMap(row)}
			}
		case TableFolders:
			row := &FolderRecord{}
			applyFolderPayload(row, payload)
			if err := tx.Create(row).Error; err != nil {
				result = Result{Success: false, Message: err.Error()}
			} else {
				result = Result{Success: true, Data: folderRowToMap(row)}
			}
		default:
			return &Response{Success: false, Message: fmt.Sprintf("unknown table: %s", table)}, nil
		}
		if !result.Success {
			allOK = false
			c.log.Error("record create failed", logger.String("table", table), logger.String("message", result.Message))
		}
		results = append(results, result)
	}
	return &Response{Success: allOK, Results: results}, nil
}

func (c *GormClient) UpdateRecords(ctx context.Context, table string, records []map[string]interface{}) (*Response, error) {
	tx, err := c.session(ctx, nil)
	if err != nil {
		return nil, err
	}

	allOK := true
	results := make([]Result, 0, len(records))
	for _, payload := range records {
		id := 0
		if v, ok := payload[FieldID]; ok {
			id = int(toFloat(v))
		}

		var result Result
		switch table {
		case TableBookmarks:
			var row BookmarkRecord
			err := tx.Where("id = ?", id).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = Result{Success: false, Message: MsgNotFound}
				break
			}
			if err != nil {
				result = Result{Success: false, Message: err.Error()}
				break
			}
			applyBookmarkPayload(&row, payload)
			if err := tx.Save(&row).Error; err != nil {
				result = Result{Success: false, Message: err.Error()}
			} else {
				result = Result{Success: true, Data: bookmarkRowToMap(&row)}
			}
		case TableFolders:
			var row FolderRecord
			err := tx.Where("id = ?", id).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = Result{Success: false, Message: MsgNotFound}
				break
			}
			if err != nil {
				result = Result{Success: false, Message: err.Error()}
				break
			}
			applyFolderPayload(&row, payload)
			if err := tx.Save(&row).Error; err != nil {
				result = Result{Success: false, Message: err.Error()}
			} else {
				result = Result{Success: true, Data: folderRowToMap(&row)}
			}
		default:
			return &Response{Success: false, Message: fmt.Sprintf("unknown table: %s", table)}, nil
		}
		if !result.Success {
			allOK = false
			if !result.NotFound() {
				c.log.Error("record update failed", logger.String("table", table), logger.Int("id", id), logger.String("message", result.Message))
			}
		}
		results = append(results, result)
	}
	return &Response{Success: allOK, Results: results}, nil
}

func (c *GormClient) DeleteRecords(ctx context.Context, table string, ids []int) (*Response, error) {
	tx, err := c.session(ctx, nil)
	if err != nil {
		return nil, err
	}

	allOK := true
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		var res *gorm.DB
		switch table {
		case TableBookmarks:
			res = tx.Where("id = ?", id).Delete(&BookmarkRecord{})
		case TableFolders:
			res = tx.Where("id = ?", id).Delete(&FolderRecord{})
		default:
			return &Response{Success: false, Message: fmt.Sprintf("unknown table: %s", table)}, nil
		}

		switch {
		case res.Error != nil:
			allOK = false
			c.log.Error("record delete failed", logger.String("table", table), logger.Int("id", id), logger.Error(res.Error))
			results = append(results, Result{Success: false, Message: res.Error.Error()})
		case res.RowsAffected == 0:
			allOK = false
			results = append(results, Result{Success: false, Message: MsgNotFound})
		default:
			results = append(results, Result{Success: true})
		}
	}
	return &Response{Success: allOK, Results: results}, nil
}
