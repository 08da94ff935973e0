package sql

import (
	"strconv"
	"strings"

	"github.com/syssam/condgen/dialect"
)

// DialectBuilder creates selectors of one dialect.
type DialectBuilder struct {
	dialect string
}

// Dialect returns a builder for the given dialect.
//
//	sql.Dialect(dialect.Postgres).Select("books", "id", "title")
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{dialect: name}
}

// Select returns a selector of the dialect over the table.
func (d *DialectBuilder) Select(table string, columns ...string) *Selector {
	return &Selector{dialect: d.dialect, table: table, columns: columns}
}

// Select returns a MySQL selector over the table. An empty column list
// selects all columns.
func Select(table string, columns ...string) *Selector {
	return Dialect(dialect.MySQL).Select(table, columns...)
}

// predicate is a rendered condition with its bound arguments.
type predicate struct {
	sql  string
	args []any
}

// Selector is a SELECT statement builder. Conditions are joined with AND
// in the order they were added.
//
// Generated condition builders embed a *Selector and call Where, In and
// OrderBy. Predicates are SQL text with "?" placeholders; Query rebinds
// them for the dialect.
type Selector struct {
	dialect string
	table   string
	columns []string
	where   []predicate
	order   []Order
	limit   *int
	offset  *int
}

// Dialect returns the dialect of the selector.
func (s *Selector) Dialect() string { return s.dialect }

// Table returns the table of the selector.
func (s *Selector) Table() string { return s.table }

// Where adds a predicate. The number of placeholders in pred must match
// the number of args.
func (s *Selector) Where(pred string, args ...any) *Selector {
	s.where = append(s.where, predicate{sql: pred, args: args})
	return s
}

// In adds a membership predicate over values. The column must be escaped
// for the dialect. If serialize is not nil, every value is passed through
// it exactly once before binding. An empty list yields a predicate that
// is always false, or always true when negated.
func In[T any](s *Selector, not bool, column string, values []T, serialize func(T) any) *Selector {
	if len(values) == 0 {
		if not {
			return s.Where("1 = 1")
		}
		return s.Where("1 = 0")
	}
	args := make([]any, len(values))
	for i, v := range values {
		if serialize != nil {
			args[i] = serialize(v)
		} else {
			args[i] = v
		}
	}
	var b strings.Builder
	b.WriteString(column)
	if not {
		b.WriteString(" NOT")
	}
	b.WriteString(" IN (")
	for i := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('?')
	}
	b.WriteByte(')')
	return s.Where(b.String(), args...)
}

// OrderBy appends ordering terms.
func (s *Selector) OrderBy(orders ...Order) *Selector {
	s.order = append(s.order, orders...)
	return s
}

// Limit sets the maximum number of rows.
func (s *Selector) Limit(n int) *Selector {
	s.limit = &n
	return s
}

// Offset sets the number of rows to skip.
func (s *Selector) Offset(n int) *Selector {
	s.offset = &n
	return s
}

// Clone returns a copy of the selector that can be modified independently.
func (s *Selector) Clone() *Selector {
	c := *s
	c.columns = append([]string(nil), s.columns...)
	c.where = append([]predicate(nil), s.where...)
	c.order = append([]Order(nil), s.order...)
	return &c
}

// Predicates returns the predicates added so far, with "?" placeholders.
func (s *Selector) Predicates() []string {
	preds := make([]string, len(s.where))
	for i, p := range s.where {
		preds[i] = p.sql
	}
	return preds
}

// Query returns the statement and its arguments.
func (s *Selector) Query() (string, []any) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteByte('*')
	}
	for i, c := range s.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.quote(c))
	}
	b.WriteString(" FROM ")
	b.WriteString(s.quote(s.table))
	for i, p := range s.where {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		if len(s.where) > 1 && strings.Contains(p.sql, " OR ") {
			b.WriteString("(" + p.sql + ")")
		} else {
			b.WriteString(p.sql)
		}
		args = append(args, p.args...)
	}
	for i, o := range s.order {
		if i == 0 {
			b.WriteString(" ORDER BY ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(s.quote(o.column))
		if o.desc {
			b.WriteString(" DESC")
		}
	}
	if s.limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(*s.offset))
	}
	return Rebind(s.dialect, b.String()), args
}

// quote quotes an identifier unless it is already quoted or an expression.
func (s *Selector) quote(ident string) string {
	if ident == "" || ident == "*" || strings.ContainsAny(ident, "`\"( ") {
		return ident
	}
	return dialect.Quote(s.dialect, ident)
}

// Rebind replaces "?" placeholders with the placeholders of the dialect.
// Placeholders inside quoted strings and identifiers are left untouched.
func Rebind(name, query string) string {
	if name != dialect.Postgres || !strings.Contains(query, "?") {
		return query
	}
	var (
		b     strings.Builder
		n     int
		quote byte
	)
	b.Grow(len(query) + 8)
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '?':
			n++
			b.WriteString(dialect.Placeholder(name, n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
