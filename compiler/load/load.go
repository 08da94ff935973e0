// Package load reads table schemas from YAML or JSON schema files.
package load

import (
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/syssam/condgen/compiler/gen"
	"github.com/syssam/condgen/schema/field"
)

// Extensions of the files read from schema directories.
var Extensions = []string{".yaml", ".yml", ".json"}

// Config holds the configuration for loading schema files.
type Config struct {
	// Paths are schema files or directories of schema files.
	Paths []string
	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

// Load reads the schema files and returns the registry of their schemas.
func (c *Config) Load() (*gen.Registry, error) {
	files, err := c.Files()
	if err != nil {
		return nil, err
	}
	parsed := make([]*File, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load: read %s: %w", path, err)
		}
		f, err := Parse(path, data)
		if err != nil {
			return nil, err
		}
		c.logger().Debug("parsed schema file", "path", path, "schemas", len(f.Schemas))
		parsed = append(parsed, f)
	}
	return Build(parsed...)
}

// Files returns the schema files of the configured paths. Directory
// entries are read non-recursively and sorted by name.
func (c *Config) Files() ([]string, error) {
	if len(c.Paths) == 0 {
		return nil, gen.NewConfigError("Paths", nil, "no schema paths")
	}
	var files []string
	for _, p := range c.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("load: read directory %s: %w", p, err)
		}
		for _, e := range entries {
			if !e.IsDir() && slices.Contains(Extensions, strings.ToLower(filepath.Ext(e.Name()))) {
				files = append(files, filepath.Join(p, e.Name()))
			}
		}
	}
	if len(files) == 0 {
		return nil, gen.NewConfigError("Paths", strings.Join(c.Paths, ","), "no schema files found")
	}
	return files, nil
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// Load is a shorthand for loading the schema files at the given paths.
func Load(paths ...string) (*gen.Registry, error) {
	return (&Config{Paths: paths}).Load()
}

// Build converts parsed files to generator schemas and resolves their
// associations. Schemas keep the file order, then the declaration order.
func Build(files ...*File) (*gen.Registry, error) {
	var (
		schemas []*gen.Schema
		assocs  [][]string
	)
	for _, f := range files {
		for _, d := range f.Schemas {
			if d == nil {
				continue
			}
			s, targets, err := convert(d)
			if err != nil {
				return nil, err
			}
			schemas = append(schemas, s)
			assocs = append(assocs, targets)
		}
	}
	reg, err := gen.NewRegistry(schemas...)
	if err != nil {
		return nil, err
	}
	for i, s := range schemas {
		for j, c := range s.Columns {
			name := assocs[i][j]
			if name == "" {
				continue
			}
			target, ok := reg.Lookup(name)
			if !ok {
				return nil, &gen.SchemaError{
					Type:    name,
					Field:   c.Name,
					Schema:  s.Name,
					Pos:     c.Pos,
					Message: "unknown association target",
				}
			}
			c.Association = &gen.Association{Type: name, Schema: target}
		}
	}
	return reg, nil
}

// convert validates a declared schema and converts it to a generator schema.
// It also returns the association target names, indexed like the columns.
func convert(d *Schema) (*gen.Schema, []string, error) {
	if !token.IsIdentifier(d.Name) {
		return nil, nil, &gen.SchemaError{Type: d.Name, Pos: d.Pos, Message: "schema name must be a Go identifier"}
	}
	s := &gen.Schema{
		Name:    d.Name,
		Table:   d.Table,
		Package: d.Package,
		Pos:     d.Pos,
	}
	if s.Table == "" {
		s.Table = gen.Plural(d.Name)
	}
	var (
		seen    = make(map[string]bool, len(d.Columns))
		targets = make([]string, 0, len(d.Columns))
	)
	for _, dc := range d.Columns {
		if dc == nil {
			continue
		}
		serr := func(msg string, cause error) error {
			return &gen.SchemaError{Type: d.Name, Field: dc.Name, Schema: d.Name, Pos: dc.Pos, Message: msg, Cause: cause}
		}
		if dc.Name == "" {
			return nil, nil, serr("column name cannot be empty", nil)
		}
		if seen[dc.Name] {
			return nil, nil, serr("column redeclared", nil)
		}
		seen[dc.Name] = true
		info, err := field.Parse(dc.Type)
		if err != nil {
			return nil, nil, serr("invalid type", err)
		}
		c := &gen.Column{
			Name:          dc.Name,
			StorageKey:    dc.Column,
			Type:          info,
			Nullable:      dc.Nullable,
			Indexed:       dc.Indexed,
			PrimaryKey:    dc.PrimaryKey,
			Autoincrement: dc.Autoincrement,
			AutoID:        dc.AutoID,
			NeedsAdapter:  dc.Adapter,
			Pos:           dc.Pos,
		}
		if c.PrimaryKey {
			if s.PrimaryKey != nil {
				return nil, nil, serr(fmt.Sprintf("multiple primary keys (%s and %s)", s.PrimaryKey.Name, c.Name), nil)
			}
			s.PrimaryKey = c
		}
		if (c.Autoincrement || c.AutoID) && !c.PrimaryKey {
			return nil, nil, serr("autoincrement and auto_id require primary_key", nil)
		}
		s.Columns = append(s.Columns, c)
		targets = append(targets, dc.Association)
	}
	return s, targets, nil
}
