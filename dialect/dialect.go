package dialect

import (
	"fmt"
	"strings"
)

// Dialect names for external usage.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Valid reports if name is a supported dialect.
func Valid(name string) bool {
	switch name {
	case MySQL, SQLite, Postgres:
		return true
	default:
		return false
	}
}

// QuoteChar returns the identifier quote character of the dialect.
// SQLite accepts both; backquotes are used to match MySQL.
func QuoteChar(name string) byte {
	if name == Postgres {
		return '"'
	}
	return '`'
}

// Quote quotes an identifier for the given dialect. Embedded quote
// characters are doubled. Dotted names ("schema.table") are quoted
// per element.
func Quote(name, ident string) string {
	q := string(QuoteChar(name))
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		parts[i] = q + strings.ReplaceAll(p, q, q+q) + q
	}
	return strings.Join(parts, ".")
}

// Placeholder returns the bind placeholder for the i-th (1-based) argument.
func Placeholder(name string, i int) string {
	if name == Postgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}
