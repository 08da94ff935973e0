package gen

import (
	"github.com/syssam/condgen/dialect"
	"github.com/syssam/condgen/schema/field"
)

// The following types describe the input of the generator. They are
// produced once per run by the schema loader and never mutated afterwards.
type (
	// Schema describes the persisted columns of one entity.
	Schema struct {
		// Name holds the entity type name, e.g. "Book".
		Name string
		// Table is the SQL table name.
		Table string
		// Package is the import path of the entity type. Empty means the
		// entity lives in the generated package.
		Package string
		// Columns in declaration order. The order is the emission order.
		Columns []*Column
		// PrimaryKey is the primary key column, if any. It is also
		// present in Columns.
		PrimaryKey *Column
		// Pos is the source position of the schema declaration.
		Pos string
	}

	// Column describes a single column of a schema.
	Column struct {
		// Name is the column identifier used for method names.
		Name string
		// StorageKey is the SQL column name, if it differs from Name.
		StorageKey string
		// Type is the declared type of the column.
		Type *field.TypeInfo
		// Nullable indicates the column accepts NULL.
		Nullable bool
		// Indexed indicates the column has an index.
		Indexed bool
		// PrimaryKey indicates the column is the primary key.
		PrimaryKey bool
		// Autoincrement indicates the primary key is assigned by the database sequence.
		Autoincrement bool
		// AutoID indicates the primary key value is generated implicitly,
		// by something other than autoincrement.
		AutoID bool
		// NeedsAdapter indicates the stored representation differs from
		// the in-memory type, and values are serialized before binding.
		NeedsAdapter bool
		// Association is set for foreign-key columns.
		Association *Association
		// Pos is the source position of the column declaration.
		Pos string
	}

	// Association references the schema a foreign-key column points to.
	Association struct {
		// Type is the name of the associated entity.
		Type string
		// Schema is the resolved associated schema. When nil, it is
		// looked up by Type in the Registry.
		Schema *Schema
	}
)

// Column returns the column with the given name, or nil.
func (s *Schema) Column(name string) *Column {
	for _, c := range s.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasPrimaryKey reports if the schema declares a primary key.
func (s *Schema) HasPrimaryKey() bool {
	return s.PrimaryKey != nil
}

// ColumnName returns the SQL name of the column.
func (c *Column) ColumnName() string {
	if c.StorageKey != "" {
		return c.StorageKey
	}
	return c.Name
}

// EscapedName returns the quoted SQL name of the column for the dialect.
func (c *Column) EscapedName(name string) string {
	return dialect.Quote(name, c.ColumnName())
}

// HasConditions reports if the column gets condition helpers.
func (c *Column) HasConditions() bool {
	return c.Indexed || c.PrimaryKey
}

// HasOrders reports if the column flags allow ordering helpers.
// Association columns are filtered separately by the planner.
func (c *Column) HasOrders() bool {
	return c.Indexed || (c.PrimaryKey && (c.Autoincrement || !c.AutoID))
}

// Registry is a read-only index of the schemas of one generation run.
// It is used to resolve association targets.
type Registry struct {
	schemas []*Schema
	byName  map[string]*Schema
}

// NewRegistry creates a registry of the given schemas.
// Schema names must be unique.
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{
		schemas: make([]*Schema, 0, len(schemas)),
		byName:  make(map[string]*Schema, len(schemas)),
	}
	for _, s := range schemas {
		if s == nil || s.Name == "" {
			return nil, &SchemaError{Message: "schema name cannot be empty"}
		}
		if _, ok := r.byName[s.Name]; ok {
			return nil, &SchemaError{Type: s.Name, Pos: s.Pos, Message: "schema redeclared"}
		}
		r.byName[s.Name] = s
		r.schemas = append(r.schemas, s)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(schemas ...*Schema) *Registry {
	r, err := NewRegistry(schemas...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the schema with the given name.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.byName[name]
	return s, ok
}

// Schemas returns the registered schemas in registration order.
func (r *Registry) Schemas() []*Schema {
	if r == nil {
		return nil
	}
	return append([]*Schema(nil), r.schemas...)
}

// Target returns the schema an association points to.
func (r *Registry) Target(a *Association) (*Schema, bool) {
	if a.Schema != nil {
		return a.Schema, true
	}
	return r.Lookup(a.Type)
}
