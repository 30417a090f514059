package record

// FieldOption customises a field added through a Builder.
type FieldOption func(*Field)

// Label sets the display label.
func Label(label string) FieldOption {
	return func(f *Field) { f.Label = label }
}

// Required marks the field as mandatory on submit.
func Required() FieldOption {
	return func(f *Field) { f.Required = true }
}

// Uppercase folds every edit of the field to upper case.
func Uppercase() FieldOption {
	return func(f *Field) { f.Uppercase = true }
}

// Multiline renders the field as a longer text area.
func Multiline() FieldOption {
	return func(f *Field) { f.Multiline = true }
}

// MaxLength truncates edits to n runes.
func MaxLength(n int) FieldOption {
	return func(f *Field) { f.MaxLength = n }
}

// Options restricts a text field to a fixed set of values. The empty string
// is always accepted.
func Options(values ...string) FieldOption {
	return func(f *Field) { f.Options = append([]string(nil), values...) }
}

// RefID sets the id kind of the referenced entity (serial by default).
func RefID(kind IDKind) FieldOption {
	return func(f *Field) { f.RefID = kind }
}

// Builder assembles a Schema.
type Builder struct {
	s Schema
}

// NewSchema starts a schema for the named table. Every operation is enabled
// and ids are serial until told otherwise.
func NewSchema(name string) *Builder {
	return &Builder{s: Schema{
		Name:   name,
		Title:  name,
		IDKind: IDSerial,
		Ops:    Operations{Create: true, Edit: true, Delete: true},
	}}
}

// Title sets the screen title.
func (b *Builder) Title(title string) *Builder {
	b.s.Title = title
	return b
}

// Noun sets the singular and plural display nouns.
func (b *Builder) Noun(singular, plural string) *Builder {
	b.s.Singular = singular
	b.s.Plural = plural
	return b
}

// IDs sets how the store assigns identifiers.
func (b *Builder) IDs(kind IDKind) *Builder {
	b.s.IDKind = kind
	return b
}

func (b *Builder) add(name string, kind Kind, opts []FieldOption) *Builder {
	f := Field{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(&f)
	}
	b.s.Fields = append(b.s.Fields, f)
	return b
}

// Text adds a text field.
func (b *Builder) Text(name string, opts ...FieldOption) *Builder {
	return b.add(name, KindText, opts)
}

// Number adds a numeric field.
func (b *Builder) Number(name string, opts ...FieldOption) *Builder {
	return b.add(name, KindNumber, opts)
}

// Bool adds a boolean field.
func (b *Builder) Bool(name string, opts ...FieldOption) *Builder {
	return b.add(name, KindBool, opts)
}

// Timestamp adds a timestamp field.
func (b *Builder) Timestamp(name string, opts ...FieldOption) *Builder {
	return b.add(name, KindTimestamp, opts)
}

// Ref adds a reference to a row of entity.
func (b *Builder) Ref(name, entity string, opts ...FieldOption) *Builder {
	opts = append([]FieldOption{func(f *Field) {
		f.Ref = entity
		f.RefID = IDSerial
	}}, opts...)
	return b.add(name, KindRef, opts)
}

// SortBy sets the list order.
func (b *Builder) SortBy(field string, descending bool) *Builder {
	b.s.Sort = SortKey{Field: field, Descending: descending}
	return b
}

// SearchOn designates the filtered field.
func (b *Builder) SearchOn(field string) *Builder {
	b.s.SearchField = field
	return b
}

// LabelWith designates the field shown when other entities reference rows
// of this one.
func (b *Builder) LabelWith(field string) *Builder {
	b.s.LabelField = field
	return b
}

// Operations overrides the offered mutations.
func (b *Builder) Operations(ops Operations) *Builder {
	b.s.Ops = ops
	return b
}

// Build validates and returns the schema.
func (b *Builder) Build() (*Schema, error) {
	s := b.s
	s.Fields = append([]Field(nil), b.s.Fields...)
	if s.Singular == "" {
		s.Singular = s.Name
	}
	if s.Plural == "" {
		s.Plural = s.Singular
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// MustBuild is Build for package-level declarations.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
