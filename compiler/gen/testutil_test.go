package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/condgen/schema/field"
)

func typ(t field.Type) *field.TypeInfo {
	return &field.TypeInfo{Type: t}
}

// bookSchemas returns the Book/Publisher schemas:
//
//	Book: id (pk, autoincrement, int), title (indexed, nullable, string),
//	      publisherId (indexed, association to Publisher)
//	Publisher: name (pk, string)
func bookSchemas(t testing.TB) (*Registry, *Schema, *Schema) {
	t.Helper()
	name := &Column{Name: "name", Type: typ(field.TypeString), PrimaryKey: true}
	publisher := &Schema{
		Name:       "Publisher",
		Table:      "publishers",
		Columns:    []*Column{name},
		PrimaryKey: name,
	}
	id := &Column{Name: "id", Type: typ(field.TypeInt), PrimaryKey: true, Autoincrement: true}
	book := &Schema{
		Name:  "Book",
		Table: "books",
		Columns: []*Column{
			id,
			{Name: "title", Type: typ(field.TypeString), Indexed: true, Nullable: true},
			{
				Name:        "publisherId",
				StorageKey:  "publisher_id",
				Type:        typ(field.TypeString),
				Indexed:     true,
				Association: &Association{Type: "Publisher"},
				Pos:         "books.yaml:14",
			},
		},
		PrimaryKey: id,
	}
	reg, err := NewRegistry(book, publisher)
	require.NoError(t, err)
	return reg, book, publisher
}

func names(methods []*MethodDescriptor) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = m.Name
	}
	return out
}

func symbols(methods []*MethodDescriptor) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = m.Symbol
	}
	return out
}

func kinds(planned []Planned) []MethodKind {
	out := make([]MethodKind, len(planned))
	for i, p := range planned {
		out[i] = p.Kind
	}
	return out
}
