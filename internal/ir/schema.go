package ir

import "strings"

// Field is a named, typed column.
type Field struct {
	Name  string
	DType DataType
}

// NewField creates a Field.
func NewField(name string, dtype DataType) Field {
	return Field{Name: name, DType: dtype}
}

func (f Field) String() string {
	return f.Name + ": " + f.DType.String()
}

// Schema is an ordered list of fields. Schemas are treated as immutable
// once built and are shared by pointer between tree and arena forms.
type Schema struct {
	fields []Field
}

// NewSchema creates a schema from fields in order.
func NewSchema(fields ...Field) *Schema {
	return &Schema{fields: append([]Field(nil), fields...)}
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Fields returns a copy of the fields in order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	return append([]Field(nil), s.fields...)
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the field names in order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Equal reports whether both schemas list the same fields in the same order.
func (s *Schema) Equal(o *Schema) bool {
	if s.Len() != o.Len() {
		return false
	}
	for i := range s.Len() {
		a, b := s.fields[i], o.fields[i]
		if a.Name != b.Name || !a.DType.Equal(b.DType) {
			return false
		}
	}
	return true
}

func (s *Schema) String() string {
	parts := make([]string, s.Len())
	for i := range parts {
		parts[i] = s.fields[i].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
