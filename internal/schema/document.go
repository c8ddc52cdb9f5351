package schema

import "go.mongodb.org/mongo-driver/bson/primitive"

// Document is a validated payload keyed by stored field name.
type Document map[string]any

func (d Document) String(name string) string {
	s, _ := d[name].(string)
	return s
}

func (d Document) Float(name string) float64 {
	f, _ := d[name].(float64)
	return f
}

func (d Document) Int(name string) int {
	n, _ := d[name].(int)
	return n
}

func (d Document) Bool(name string) bool {
	b, _ := d[name].(bool)
	return b
}

func (d Document) ObjectID(name string) primitive.ObjectID {
	id, _ := d[name].(primitive.ObjectID)
	return id
}

func (d Document) List(name string) []Document {
	l, _ := d[name].([]Document)
	return l
}

func (d Document) Has(name string) bool {
	_, ok := d[name]
	return ok
}
