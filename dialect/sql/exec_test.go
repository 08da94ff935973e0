package sql_test

import (
	"context"
	stdsql "database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/condgen/dialect"
	"github.com/syssam/condgen/dialect/sql"
)

// BookSchema mirrors the accessors generated condition helpers bind through.
var BookSchema = struct {
	ID    sql.Column[int]
	Title sql.Column[string]
	ISBN  sql.Column[uuid.UUID]
}{
	ID:    sql.NewColumn[int]("id"),
	Title: sql.NewColumn[string]("title"),
	ISBN:  sql.NewColumn[uuid.UUID]("isbn").WithAdapter(func(u uuid.UUID) any { return u.String() }),
}

// BookSelector has the shape of a generated selector.
type BookSelector struct {
	*sql.Selector
}

func NewBookSelector(d string, columns ...string) *BookSelector {
	return &BookSelector{Selector: sql.Dialect(d).Select("books", columns...)}
}

func (s *BookSelector) TitleEq(title string) *BookSelector {
	s.Where(dialect.Quote(s.Dialect(), "title")+" = ?", BookSchema.Title.Serialize(title))
	return s
}

func (s *BookSelector) TitleIn(values []string) *BookSelector {
	sql.In(s.Selector, false, dialect.Quote(s.Dialect(), "title"), values, BookSchema.Title.Serialize)
	return s
}

func (s *BookSelector) TitleInValues(values ...string) *BookSelector {
	return s.TitleIn(values)
}

func (s *BookSelector) ISBNNotIn(values []uuid.UUID) *BookSelector {
	sql.In(s.Selector, true, dialect.Quote(s.Dialect(), "isbn"), values, BookSchema.ISBN.Serialize)
	return s
}

func (s *BookSelector) ISBNIn(values []uuid.UUID) *BookSelector {
	sql.In(s.Selector, false, dialect.Quote(s.Dialect(), "isbn"), values, BookSchema.ISBN.Serialize)
	return s
}

func (s *BookSelector) OrderByIDDesc() *BookSelector {
	s.OrderBy(BookSchema.ID.Desc())
	return s
}

func driverValues(args []any) []driver.Value {
	values := make([]driver.Value, len(args))
	for i, a := range args {
		values[i] = a
	}
	return values
}

func TestSelectorWithMock(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	isbn := uuid.New()
	s := NewBookSelector(dialect.Postgres, "id", "title").
		TitleEq("Dune").
		ISBNNotIn([]uuid.UUID{isbn}).
		OrderByIDDesc()
	s.Limit(5)
	query, args := s.Query()
	require.Equal(t, `SELECT "id", "title" FROM "books" WHERE "title" = $1 AND "isbn" NOT IN ($2) ORDER BY "id" DESC LIMIT 5`, query)

	mock.ExpectQuery(query).
		WithArgs("Dune", isbn.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(1, "Dune"))

	rows, err := db.QueryContext(context.Background(), query, args...)
	require.NoError(t, err)
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var (
			id    int
			title string
		)
		require.NoError(t, rows.Scan(&id, &title))
		titles = append(titles, title)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"Dune"}, titles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectorWithMockEmptyIn(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	query, args := NewBookSelector(dialect.MySQL, "id").TitleIn(nil).Query()
	require.Equal(t, "SELECT `id` FROM `books` WHERE 1 = 0", query)
	require.Empty(t, args)

	mock.ExpectQuery(query).WithArgs(driverValues(args)...).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	rows, err := db.Query(query, args...)
	require.NoError(t, err)
	assert.False(t, rows.Next())
	require.NoError(t, rows.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func openSQLite(t *testing.T) *stdsql.DB {
	t.Helper()
	db, err := stdsql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("CREATE TABLE `books` (`id` INTEGER PRIMARY KEY, `title` TEXT, `isbn` TEXT)")
	require.NoError(t, err)
	return db
}

func bookIDs(t *testing.T, db *stdsql.DB, s *BookSelector) []int {
	t.Helper()
	query, args := s.Query()
	rows, err := db.Query(query, args...)
	require.NoError(t, err)
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	return ids
}

func TestSelectorWithSQLite(t *testing.T) {
	db := openSQLite(t)
	isbns := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, title := range []string{"Dune", "Emma", "Ulysses"} {
		_, err := db.Exec("INSERT INTO `books` (`id`, `title`, `isbn`) VALUES (?, ?, ?)", i+1, title, isbns[i].String())
		require.NoError(t, err)
	}

	t.Run("varargs and collection forms match", func(t *testing.T) {
		values := []string{"Dune", "Ulysses"}
		collection := bookIDs(t, db, NewBookSelector(dialect.SQLite, "id").TitleIn(values).OrderByIDDesc())
		varargs := bookIDs(t, db, NewBookSelector(dialect.SQLite, "id").TitleInValues(values...).OrderByIDDesc())
		assert.Equal(t, []int{3, 1}, collection)
		assert.Equal(t, collection, varargs)
	})

	t.Run("adapter serializes values", func(t *testing.T) {
		ids := bookIDs(t, db, NewBookSelector(dialect.SQLite, "id").ISBNIn(isbns[1:2]))
		assert.Equal(t, []int{2}, ids)
	})

	t.Run("empty in matches nothing", func(t *testing.T) {
		assert.Empty(t, bookIDs(t, db, NewBookSelector(dialect.SQLite, "id").TitleIn(nil)))
	})

	t.Run("empty not in matches everything", func(t *testing.T) {
		ids := bookIDs(t, db, NewBookSelector(dialect.SQLite, "id").ISBNNotIn(nil).OrderByIDDesc())
		assert.Equal(t, []int{3, 2, 1}, ids)
	})
}
