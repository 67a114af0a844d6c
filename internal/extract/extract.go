// Package extract pulls named fields out of the top-level "data" element of a
// JSON response into parallel, index-aligned sequences.
package extract

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"
)

// Shape describes what the "data" element held.
type Shape string

const (
	ShapeAbsent Shape = "absent"
	ShapeList   Shape = "list"
	ShapeRecord Shape = "record"
)

// Result holds one sequence per requested field. Index i of every sequence
// refers to the same source record. Sequences are never nil.
type Result struct {
	Shape  Shape
	Order  []string
	Fields map[string][]any
}

// Values returns the sequence for field, or an empty sequence if the field was
// not requested.
func (r *Result) Values(field string) []any {
	if v, ok := r.Fields[field]; ok {
		return v
	}
	return []any{}
}

// Len is the number of records extracted.
func (r *Result) Len() int {
	if len(r.Order) == 0 {
		return 0
	}
	return len(r.Fields[r.Order[0]])
}

type Extractor struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// Extract never fails: a body without a usable "data" element yields empty
// sequences and a warning that carries the observed status code.
func (e *Extractor) Extract(status int, body []byte, fields []string) *Result {
	res := &Result{Shape: ShapeAbsent, Fields: make(map[string][]any, len(fields))}
	for _, f := range fields {
		if _, dup := res.Fields[f]; dup {
			continue
		}
		res.Order = append(res.Order, f)
		res.Fields[f] = []any{}
	}

	switch data := decodeData(body).(type) {
	case []any:
		res.Shape = ShapeList
		for _, item := range data {
			rec, _ := item.(map[string]any)
			res.append(rec)
		}
	case map[string]any:
		res.Shape = ShapeRecord
		res.append(data)
	default:
		e.log.Warn("'data' field is null in response", zap.Int("status", status))
	}
	return res
}

func (r *Result) append(rec map[string]any) {
	for _, f := range r.Order {
		r.Fields[f] = append(r.Fields[f], rec[f])
	}
}

// decodeData returns the "data" member, or nil when the body is not a JSON
// object or has no such member.
func decodeData(body []byte) any {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	raw, ok := envelope["data"]
	if !ok {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}
