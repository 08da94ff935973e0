// Package sql provides the SELECT builder that generated condition helpers
// run against.
//
// # Selectors
//
// A Selector collects predicates, ordering terms and pagination for one
// table. Predicates are joined with AND in the order they were added:
//
//	s := sql.Dialect(dialect.Postgres).Select("books", "id", "title")
//	s.Where(`"title" = ?`, "Dune")
//	sql.In(s, false, `"id"`, []int{1, 2, 3}, nil)
//	s.OrderBy(sql.Desc("id")).Limit(10)
//
//	query, args := s.Query()
//	// SELECT "id", "title" FROM "books" WHERE "title" = $1 AND "id" IN ($2, $3, $4) ORDER BY "id" DESC LIMIT 10
//
// Predicates use "?" placeholders. Query rebinds them for the dialect.
//
// # Membership
//
// In renders IN and NOT IN predicates. An empty value list renders "1 = 0"
// for IN and "1 = 1" for NOT IN, so the statement stays valid.
//
// # Columns
//
// Column is the typed accessor generated code uses for a column. Columns
// stored in a different representation carry an adapter:
//
//	isbn := sql.NewColumn[uuid.UUID]("isbn").WithAdapter(func(u uuid.UUID) any {
//		return u.String()
//	})
//	isbn.Serialize(id) // id.String()
//
// The package builds statements only. Run them with database/sql or any
// driver that accepts the dialect's placeholders.
package sql
