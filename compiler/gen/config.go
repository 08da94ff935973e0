package gen

import (
	"go/token"
	"log/slog"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/syssam/condgen/dialect"
)

// DefaultHeader is the header comment of generated files.
const DefaultHeader = "Code generated by condgen. DO NOT EDIT."

// Config holds the configuration of a generation run.
type Config struct {
	// Target is the output directory of generated files.
	Target string
	// Package is the import path of the generated package.
	// For example: "github.com/org/project/query".
	Package string
	// Dialect selects identifier quoting of the generated predicates.
	Dialect string
	// OrderHelpers enables the ordering helpers.
	OrderHelpers bool
	// Workers limits the number of schemas generated in parallel.
	Workers int
	// ContinueOnError keeps generating the remaining schemas after a
	// schema failed. All failures are returned joined.
	ContinueOnError bool
	// Header is the header comment of generated files.
	Header string
	// Logger receives debug records of the run. Nil discards them.
	Logger *slog.Logger
}

// OutputConfig holds the resolved settings of written files.
type OutputConfig struct {
	// Target is the output directory.
	Target string
	// Package is the import path of the generated package, if known.
	Package string
	// Name is the package clause of generated files.
	Name string
	// Header is the header comment, DefaultHeader when unset.
	Header string
}

// Output returns the output settings of the config.
func (c *Config) Output() OutputConfig {
	out := OutputConfig{
		Target:  c.Target,
		Package: c.Package,
		Name:    c.PackageName(),
		Header:  c.Header,
	}
	if out.Header == "" {
		out.Header = DefaultHeader
	}
	return out
}

// PackageName returns the name of the generated package. The last element
// of Package, or else of Target, is reduced to a valid Go identifier.
func (c *Config) PackageName() string {
	switch {
	case c.Package != "":
		return packageIdent(path.Base(c.Package))
	case c.Target != "":
		return packageIdent(filepath.Base(c.Target))
	default:
		return defaultPackage
	}
}

const defaultPackage = "query"

// packageIdent lower-cases name and drops every rune that cannot appear in
// an identifier. Names starting with a digit are prefixed with "query".
func packageIdent(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	id := b.String()
	switch {
	case id == "" || id == "_" || token.IsKeyword(id):
		return defaultPackage
	case unicode.IsDigit(rune(id[0])):
		return defaultPackage + id
	default:
		return id
	}
}

// Log returns the logger of the run. It never returns nil.
func (c *Config) Log() *slog.Logger { return c.logger() }

// DialectName returns the configured dialect, MySQL by default.
func (c *Config) DialectName() string { return c.dialect() }

func (c *Config) logger() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Config) dialect() string {
	if c == nil || c.Dialect == "" {
		return dialect.MySQL
	}
	return c.Dialect
}

func defaultConfig() *Config {
	return &Config{
		Dialect:      dialect.MySQL,
		OrderHelpers: true,
		Workers:      runtime.GOMAXPROCS(0),
		Header:       DefaultHeader,
	}
}
