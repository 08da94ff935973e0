package sql

// Order is an ordering term of a selector.
type Order struct {
	column string
	desc   bool
}

// Asc returns an ascending ordering term for the column.
func Asc(column string) Order { return Order{column: column} }

// Desc returns a descending ordering term for the column.
func Desc(column string) Order { return Order{column: column, desc: true} }

// Column returns the column of the term.
func (o Order) Column() string { return o.column }

// Descending reports if the term sorts in descending order.
func (o Order) Descending() bool { return o.desc }

// Column is a typed column accessor. Generated condition builders use it
// to serialize bound values and to build ordering terms.
//
//	var BookSchema = struct {
//		ID    sql.Column[int]
//		ISBN  sql.Column[uuid.UUID]
//	}{
//		ID:   sql.NewColumn[int]("id"),
//		ISBN: sql.NewColumn[uuid.UUID]("isbn").WithAdapter(func(u uuid.UUID) any { return u.String() }),
//	}
type Column[T any] struct {
	name    string
	adapter func(T) any
}

// NewColumn returns an accessor of the named column.
func NewColumn[T any](name string) Column[T] {
	return Column[T]{name: name}
}

// WithAdapter returns a copy of the accessor that converts values to
// their stored representation with fn.
func (c Column[T]) WithAdapter(fn func(T) any) Column[T] {
	c.adapter = fn
	return c
}

// Name returns the SQL name of the column.
func (c Column[T]) Name() string { return c.name }

// HasAdapter reports if values are converted before binding.
func (c Column[T]) HasAdapter() bool { return c.adapter != nil }

// Serialize returns the stored representation of v. Without an adapter
// it returns v unchanged.
func (c Column[T]) Serialize(v T) any {
	if c.adapter == nil {
		return v
	}
	return c.adapter(v)
}

// Asc returns an ascending ordering term for the column.
func (c Column[T]) Asc() Order { return Asc(c.name) }

// Desc returns a descending ordering term for the column.
func (c Column[T]) Desc() Order { return Desc(c.name) }
