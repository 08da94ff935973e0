package sql

import (
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/condgen/dialect"
)

func TestSelectorQuery(t *testing.T) {
	tests := []struct {
		name     string
		selector func() *Selector
		query    string
		args     []any
	}{
		{
			name:     "all columns",
			selector: func() *Selector { return Select("books") },
			query:    "SELECT * FROM `books`",
		},
		{
			name: "where and order",
			selector: func() *Selector {
				return Select("books", "id", "title").
					Where("`title` = ?", "Dune").
					OrderBy(Asc("title"), Desc("id"))
			},
			query: "SELECT `id`, `title` FROM `books` WHERE `title` = ? ORDER BY `title`, `id` DESC",
			args:  []any{"Dune"},
		},
		{
			name: "predicates are joined with and",
			selector: func() *Selector {
				return Select("books").
					Where("`title` IS NULL").
					Where("`id` > ?", 3)
			},
			query: "SELECT * FROM `books` WHERE `title` IS NULL AND `id` > ?",
			args:  []any{3},
		},
		{
			name: "disjunction is grouped",
			selector: func() *Selector {
				return Select("books").
					Where("`id` = ? OR `id` = ?", 1, 2).
					Where("`title` IS NOT NULL")
			},
			query: "SELECT * FROM `books` WHERE (`id` = ? OR `id` = ?) AND `title` IS NOT NULL",
			args:  []any{1, 2},
		},
		{
			name: "pagination",
			selector: func() *Selector {
				return Select("books", "id").Limit(10).Offset(20)
			},
			query: "SELECT `id` FROM `books` LIMIT 10 OFFSET 20",
		},
		{
			name: "postgres",
			selector: func() *Selector {
				s := Dialect(dialect.Postgres).Select("books", "id")
				s.Where(`"title" = ?`, "Dune")
				return In(s, false, `"id"`, []int{1, 2}, nil)
			},
			query: `SELECT "id" FROM "books" WHERE "title" = $1 AND "id" IN ($2, $3)`,
			args:  []any{"Dune", 1, 2},
		},
		{
			name: "schema qualified table",
			selector: func() *Selector {
				return Dialect(dialect.Postgres).Select("library.books")
			},
			query: `SELECT * FROM "library"."books"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := tt.selector().Query()
			assert.Equal(t, tt.query, query)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestIn(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		s := In(Select("books"), false, "`title`", []string{"a", "b", "c"}, nil)
		query, args := s.Query()
		assert.Equal(t, "SELECT * FROM `books` WHERE `title` IN (?, ?, ?)", query)
		assert.Equal(t, []any{"a", "b", "c"}, args)
	})

	t.Run("negated", func(t *testing.T) {
		s := In(Select("books"), true, "`id`", []int{7}, nil)
		query, args := s.Query()
		assert.Equal(t, "SELECT * FROM `books` WHERE `id` NOT IN (?)", query)
		assert.Equal(t, []any{7}, args)
	})

	t.Run("empty", func(t *testing.T) {
		tests := []struct {
			not  bool
			pred string
		}{
			{not: false, pred: "1 = 0"},
			{not: true, pred: "1 = 1"},
		}
		for _, tt := range tests {
			t.Run(strconv.FormatBool(tt.not), func(t *testing.T) {
				s := In[string](Select("books"), tt.not, "`title`", nil, nil)
				assert.Equal(t, []string{tt.pred}, s.Predicates())
				_, args := s.Query()
				assert.Empty(t, args)
			})
		}
	})

	t.Run("serializer runs once per value", func(t *testing.T) {
		var calls int
		ser := func(v int) any {
			calls++
			return strconv.Itoa(v)
		}
		s := In(Select("books"), false, "`id`", []int{1, 2, 3}, ser)
		_, args := s.Query()
		assert.Equal(t, 3, calls)
		assert.Equal(t, []any{"1", "2", "3"}, args)
	})
}

func TestColumn(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		c := NewColumn[int]("id")
		assert.Equal(t, "id", c.Name())
		assert.False(t, c.HasAdapter())
		assert.Equal(t, 5, c.Serialize(5))
	})

	t.Run("adapter", func(t *testing.T) {
		id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		c := NewColumn[uuid.UUID]("isbn").WithAdapter(func(u uuid.UUID) any { return u.String() })
		assert.True(t, c.HasAdapter())
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", c.Serialize(id))
	})

	t.Run("with adapter copies", func(t *testing.T) {
		base := NewColumn[int]("id")
		_ = base.WithAdapter(func(v int) any { return v * 2 })
		assert.False(t, base.HasAdapter())
	})

	t.Run("orders", func(t *testing.T) {
		c := NewColumn[string]("title")
		assert.Equal(t, "title", c.Asc().Column())
		assert.False(t, c.Asc().Descending())
		assert.True(t, c.Desc().Descending())
	})
}

func TestClone(t *testing.T) {
	base := Select("books").Where("`id` > ?", 1)
	c := base.Clone().Where("`id` < ?", 9).OrderBy(Asc("id"))

	q, args := base.Query()
	assert.Equal(t, "SELECT * FROM `books` WHERE `id` > ?", q)
	assert.Equal(t, []any{1}, args)

	q, args = c.Query()
	assert.Equal(t, "SELECT * FROM `books` WHERE `id` > ? AND `id` < ? ORDER BY `id`", q)
	assert.Equal(t, []any{1, 9}, args)
}

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect string
		in      string
		out     string
	}{
		{dialect.MySQL, "a = ? AND b = ?", "a = ? AND b = ?"},
		{dialect.SQLite, "a = ?", "a = ?"},
		{dialect.Postgres, "a = ? AND b = ?", "a = $1 AND b = $2"},
		{dialect.Postgres, "a = '?' AND b = ?", "a = '?' AND b = $1"},
		{dialect.Postgres, `"a?" = ?`, `"a?" = $1`},
		{dialect.Postgres, "a = 1", "a = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.in, func(t *testing.T) {
			require.Equal(t, tt.out, Rebind(tt.dialect, tt.in))
		})
	}
}
