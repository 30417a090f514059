package record

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the value type of a field.
type Kind string

const (
	// KindText holds free text.
	KindText Kind = "text"
	// KindNumber is coerced to float64; blank input means absent.
	KindNumber Kind = "number"
	// KindBool holds a flag.
	KindBool Kind = "boolean"
	// KindRef is an optional reference to a row of another entity.
	KindRef Kind = "optional-foreign-key"
	// KindTimestamp holds a point in time.
	KindTimestamp Kind = "timestamp"
)

// IDKind describes how the store assigns identifiers for an entity.
type IDKind string

const (
	// IDSerial ids are store-assigned integers.
	IDSerial IDKind = "serial"
	// IDUUID ids are UUID strings.
	IDUUID IDKind = "uuid"
)

// Field describes one column of an entity.
type Field struct {
	Name      string
	Label     string
	Kind      Kind
	Required  bool
	Uppercase bool
	Multiline bool
	MaxLength int
	Options   []string
	// Ref names the referenced entity for KindRef fields.
	Ref string
	// RefID is the id kind of the referenced entity.
	RefID IDKind
}

// Title returns the label, falling back to the column name.
func (f Field) Title() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// SortKey orders a RecordList.
type SortKey struct {
	Field      string
	Descending bool
}

// Operations lists the mutations a screen offers.
type Operations struct {
	Create bool
	Edit   bool
	Delete bool
}

// Schema is the per-entity configuration consumed by the controller and the
// stores.
type Schema struct {
	// Name is the table name in the backing store.
	Name     string
	Title    string
	Singular string
	Plural   string
	IDKind   IDKind
	Fields   []Field
	Sort     SortKey
	// SearchField is the column matched by the filter. For KindRef columns
	// the referenced record's label is matched.
	SearchField string
	// LabelField is the column used when another entity displays a reference
	// to this one.
	LabelField string
	Ops        Operations
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns returns the field names in declaration order.
func (s *Schema) Columns() []string {
	cols := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// Refs returns the KindRef fields.
func (s *Schema) Refs() []Field {
	var refs []Field
	for _, f := range s.Fields {
		if f.Kind == KindRef {
			refs = append(refs, f)
		}
	}
	return refs
}

// Defaults returns the empty form values for create mode.
func (s *Schema) Defaults() Fields {
	out := make(Fields, len(s.Fields))
	for _, f := range s.Fields {
		switch f.Kind {
		case KindText:
			out[f.Name] = ""
		case KindBool:
			out[f.Name] = false
		default:
			out[f.Name] = nil
		}
	}
	return out
}

// Project keeps only the schema columns of fields, filling missing ones with
// their defaults.
func (s *Schema) Project(fields Fields) Fields {
	out := s.Defaults()
	for _, f := range s.Fields {
		if v, ok := fields[f.Name]; ok {
			out[f.Name] = v
		}
	}
	return out
}

// Missing returns the required fields that are empty in fields.
func (s *Schema) Missing(fields Fields) []Field {
	var missing []Field
	for _, f := range s.Fields {
		if f.Required && IsEmpty(fields[f.Name]) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Noun returns the singular or plural display noun for n rows.
func (s *Schema) Noun(n int) string {
	if n == 1 {
		return s.Singular
	}
	return s.Plural
}

// Validate checks that the schema is internally consistent.
func (s *Schema) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("record: schema has no name")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("record: schema %q has no fields", s.Name)
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" || f.Name == "id" {
			return fmt.Errorf("record: schema %q has invalid field name %q", s.Name, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("record: schema %q declares %q twice", s.Name, f.Name)
		}
		seen[f.Name] = true
		switch f.Kind {
		case KindText, KindNumber, KindBool, KindTimestamp:
		case KindRef:
			if f.Ref == "" {
				return fmt.Errorf("record: field %s.%s references nothing", s.Name, f.Name)
			}
		default:
			return fmt.Errorf("record: field %s.%s has unknown kind %q", s.Name, f.Name, f.Kind)
		}
	}
	if s.Sort.Field != "" && !seen[s.Sort.Field] {
		return fmt.Errorf("record: schema %q sorts by unknown field %q", s.Name, s.Sort.Field)
	}
	if s.SearchField != "" && !seen[s.SearchField] {
		return fmt.Errorf("record: schema %q searches unknown field %q", s.Name, s.SearchField)
	}
	if s.LabelField != "" && !seen[s.LabelField] {
		return fmt.Errorf("record: schema %q labels with unknown field %q", s.Name, s.LabelField)
	}
	return nil
}
