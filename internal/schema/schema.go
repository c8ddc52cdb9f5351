package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"foodhub/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Type int

const (
	String Type = iota
	Number
	Integer
	Bool
	ID
	List
)

// Field describes one top-level key of a payload.
type Field struct {
	Name     string
	Type     Type
	Required bool
	// Mutable puts the field on the update allow-list.
	Mutable bool
	Default any
	// Message is reported when the value has the wrong type, and for any
	// check without a message of its own.
	Message string
	Checks  []Check
	// Elem validates every element of a List field.
	Elem *Schema
}

// Schema is an ordered rule set for one resource kind. Declaration order is
// the order in which failures are looked for.
type Schema struct {
	Fields []Field
	// MissingMessage replaces the generated "a, b, and c are required".
	MissingMessage string
}

// Create validates a full payload and returns the document to insert with
// defaults applied. Checks run presence, then type and range, then list
// elements, then identifier shape; the first failure wins.
func (s *Schema) Create(payload map[string]any) (Document, error) {
	for _, f := range s.Fields {
		if f.Required && missing(payload, f.Name) {
			return nil, &Error{Kind: MissingFields, Field: f.Name, Message: s.missingMessage()}
		}
	}

	doc := Document{}
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Type == ID {
			continue
		}
		v, ok := lookup(payload, f.Name)
		if !ok {
			continue
		}
		nv, err := f.validate(v)
		if err != nil {
			return nil, err
		}
		doc[f.Name] = nv
	}

	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Type != List || f.Elem == nil {
			continue
		}
		items, ok := doc[f.Name].([]any)
		if !ok {
			continue
		}
		elems := make([]Document, 0, len(items))
		for _, item := range items {
			m, _ := item.(map[string]any)
			elem, err := f.Elem.Create(m)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		doc[f.Name] = elems
	}

	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Type != ID {
			continue
		}
		v, ok := lookup(payload, f.Name)
		if !ok {
			continue
		}
		nv, err := f.validate(v)
		if err != nil {
			return nil, err
		}
		doc[f.Name] = nv
	}

	for _, f := range s.Fields {
		if _, ok := doc[f.Name]; !ok && f.Default != nil {
			doc[f.Name] = f.Default
		}
	}
	return doc, nil
}

// Patch keeps only allow-listed keys, validates those present with the same
// per-field rules as Create and never enforces presence. Unknown keys are
// dropped silently.
func (s *Schema) Patch(payload map[string]any) (Document, error) {
	doc := Document{}
	for i := range s.Fields {
		f := &s.Fields[i]
		if !f.Mutable {
			continue
		}
		v, ok := payload[f.Name]
		if !ok {
			continue
		}
		nv, err := f.validate(v)
		if err != nil {
			return nil, err
		}
		doc[f.Name] = nv
	}
	if len(doc) == 0 {
		return nil, &Error{Kind: NoFieldsToUpdate, Message: "No fields to update"}
	}
	return doc, nil
}

// AllowList returns the names of the fields an update may touch.
func (s *Schema) AllowList() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Mutable {
			names = append(names, f.Name)
		}
	}
	return names
}

func (s *Schema) missingMessage() string {
	if s.MissingMessage != "" {
		return s.MissingMessage
	}
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	switch len(names) {
	case 1:
		return names[0] + " is required"
	case 2:
		return names[0] + " and " + names[1] + " are required"
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1] + " are required"
	}
}

func (f *Field) validate(v any) (any, error) {
	var nv any
	switch f.Type {
	case String:
		s, ok := v.(string)
		if !ok {
			return nil, f.invalid(f.message())
		}
		nv = s
	case Number, Integer:
		n, ok := toFloat(v)
		if !ok || (f.Type == Integer && !isInt(n)) {
			return nil, f.invalid(f.message())
		}
		nv = n
	case Bool:
		b, ok := v.(bool)
		if !ok {
			return nil, f.invalid(f.message())
		}
		nv = b
	case List:
		l, ok := v.([]any)
		if !ok {
			return nil, f.invalid(f.message())
		}
		nv = l
	case ID:
		s, _ := v.(string)
		if !model.IsValidID(s) {
			return nil, &Error{Kind: InvalidIDFormat, Field: f.Name, Message: f.message()}
		}
		oid, _ := primitive.ObjectIDFromHex(s)
		return oid, nil
	}

	for _, c := range f.Checks {
		if c.ok(nv) {
			continue
		}
		if c.message != "" {
			return nil, f.invalid(c.message)
		}
		return nil, f.invalid(f.message())
	}

	if f.Type == Integer {
		return int(nv.(float64)), nil
	}
	return nv, nil
}

func (f *Field) invalid(message string) *Error {
	return &Error{Kind: InvalidField, Field: f.Name, Message: message}
}

func (f *Field) message() string {
	if f.Message != "" {
		return f.Message
	}
	switch f.Type {
	case String:
		return f.Name + " must be a string"
	case Number, Integer:
		return f.Name + " must be a number"
	case Bool:
		return f.Name + " must be a boolean"
	case List:
		return f.Name + " must be an array"
	case ID:
		return fmt.Sprintf("Invalid %s format", f.Name)
	}
	return "Invalid " + f.Name
}

// missing treats absent keys, null and the empty string alike.
func missing(payload map[string]any, name string) bool {
	v, ok := payload[name]
	if !ok || v == nil {
		return true
	}
	s, isString := v.(string)
	return isString && s == ""
}

// lookup ignores explicit nulls so optional fields fall back to defaults.
func lookup(payload map[string]any, name string) (any, bool) {
	v, ok := payload[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// isInt reports whether n is whole and converts to int without wrapping.
func isInt(n float64) bool {
	return n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
