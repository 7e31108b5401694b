// Package store describes the key-value table that backs form
// submissions. Only read-only schema metadata crosses this boundary; the
// store itself is an external collaborator and its client SDK stays out
// of this module.
package store

import "context"

// AttributeDef is one attribute of the table schema.
type AttributeDef struct {
	Name string `json:"name"`
	Type string `json:"type"` // scalar type tag, e.g. "S" or "N"
}

// KeyElement is one element of the table's key schema.
type KeyElement struct {
	Name string `json:"name"`
	Role string `json:"role"` // "HASH" or "RANGE"
}

// TableSchema is the read-only description of the submission table.
type TableSchema struct {
	TableName  string         `json:"tableName"`
	Keys       []KeyElement   `json:"keySchema"`
	Attributes []AttributeDef `json:"attributeDefinitions"`
	ItemCount  int64          `json:"itemCount"`
}

// SchemaStore reads the table description.
type SchemaStore interface {
	Describe(ctx context.Context) (*TableSchema, error)
}

// Static serves a fixed schema description.
type Static struct {
	Schema TableSchema
}

// Describe returns a copy of the fixed schema.
func (s *Static) Describe(_ context.Context) (*TableSchema, error) {
	out := s.Schema
	out.Keys = append([]KeyElement(nil), s.Schema.Keys...)
	out.Attributes = append([]AttributeDef(nil), s.Schema.Attributes...)
	return &out, nil
}

// FormTable describes the table where stamped form submissions are filed.
func FormTable() *Static {
	return &Static{Schema: TableSchema{
		TableName: "form-submissions",
		Keys: []KeyElement{
			{Name: "formId", Role: "HASH"},
		},
		Attributes: []AttributeDef{
			{Name: "formId", Type: "S"},
			{Name: "createdAt", Type: "S"},
		},
	}}
}
