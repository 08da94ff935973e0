// Package sql renders generation results to Go source files with
// github.com/dave/jennifer.
//
// Every schema gets one file, named after the snake-cased entity with a
// "_where.go" suffix, holding the selector type of the entity and its
// helper methods in emission order:
//
//	// BookSelector builds SELECT statements over the books table.
//	type BookSelector struct {
//		*sql.Selector
//	}
//
//	// TitleIn matches rows where title is one of values.
//	// An empty list matches no rows.
//	// The values argument must not be nil.
//	func (s *BookSelector) TitleIn(values []string) *BookSelector {
//		sql.In(s.Selector, false, "`title`", values, nil)
//		return s
//	}
//
// Column accessors referenced by the helpers, such as BookSchema.Title,
// are declared by the user in the target package.
//
// Files are formatted with golang.org/x/tools/imports before they are
// written. When formatting fails, the raw output is written next to the
// target with an ".error" suffix.
package sql
