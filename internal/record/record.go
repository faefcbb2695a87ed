package record

import (
	"context"
)

// System fields assigned by the record store on every table.
const (
	FieldID         = "Id"
	FieldCreatedOn  = "CreatedOn"
	FieldModifiedOn = "ModifiedOn"
)

// Supported filter operators.
const (
	OpEqualTo  = "EqualTo"
	OpContains = "Contains"
)

// MsgNotFound is the envelope message used when a record id does not exist.
// Callers treat it as an expected outcome, not a backend failure.
const MsgNotFound = "Record does not exist"

// Where is a single filter condition on a record field.
type Where struct {
	Field    string
	Operator string
	Value    interface{}
}

// Order is a sort directive on a record field.
type Order struct {
	Field      string
	Descending bool
}

// Query narrows and orders a fetch. A nil query returns everything.
type Query struct {
	Fields  []string
	Where   []Where
	OrderBy []Order
	Limit   int
	Offset  int
}

// FieldError carries a field-level validation message for one record of a
// batch operation.
type FieldError struct {
	FieldLabel string `json:"fieldLabel"`
	Message    string `json:"message"`
}

// Result is the per-record outcome inside a batch response.
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Message string                 `json:"message,omitempty"`
	Errors  []FieldError           `json:"errors,omitempty"`
}

// NotFound reports whether this result failed because the record id does
// not exist.
func (r Result) NotFound() bool {
	return !r.Success && r.Message == MsgNotFound
}

// Response is the envelope every record-store call returns. Success refers
// to the call as a whole; batch operations additionally report per-record
// outcomes in Results.
type Response struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Results []Result               `json:"results,omitempty"`
}

// Client is the generic CRUD boundary to the record store. A Go error is
// returned only for transport-level failures (backend unreachable or not
// initialized); a rejected call comes back as a Response with Success set
// to false. GetRecordByID reports a missing id as Success true with nil
// Data rather than an error.
type Client interface {
	FetchRecords(ctx context.Context, table string, q *Query) (*Response, error)
	GetRecordByID(ctx context.Context, table string, id int, q *Query) (*Response, error)
	CreateRecords(ctx context.Context, table string, records []map[string]interface{}) (*Response, error)
	UpdateRecords(ctx context.Context, table string, records []map[string]interface{}) (*Response, error)
	DeleteRecords(ctx context.Context, table string, ids []int) (*Response, error)
}
