// Package dialect names the SQL dialects condgen renders conditions for.
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// The dialect decides how identifiers are quoted inside generated predicate
// literals and which placeholder syntax the runtime selector produces.
package dialect
