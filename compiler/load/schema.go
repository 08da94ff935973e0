package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// File is a schema file as declared on disk.
type File struct {
	// Path is the file the schemas were read from.
	Path    string    `yaml:"-"`
	Schemas []*Schema `yaml:"schemas"`
}

// Schema is a schema as declared in a schema file.
type Schema struct {
	// Name is the entity type name, e.g. "Book".
	Name string `yaml:"name"`
	// Table defaults to the snake-cased plural of Name.
	Table string `yaml:"table,omitempty"`
	// Package is the import path of the entity type.
	Package string    `yaml:"package,omitempty"`
	Columns []*Column `yaml:"columns"`
	Pos     string    `yaml:"-"`
}

// Column is a column as declared in a schema file.
type Column struct {
	Name string `yaml:"name"`
	// Column is the SQL column name, if it differs from Name.
	Column        string `yaml:"column,omitempty"`
	Type          string `yaml:"type"`
	Nullable      bool   `yaml:"nullable,omitempty"`
	Indexed       bool   `yaml:"indexed,omitempty"`
	PrimaryKey    bool   `yaml:"primary_key,omitempty"`
	Autoincrement bool   `yaml:"autoincrement,omitempty"`
	AutoID        bool   `yaml:"auto_id,omitempty"`
	// Adapter marks columns stored in a representation different from
	// their Go type.
	Adapter bool `yaml:"adapter,omitempty"`
	// Association is the name of the referenced schema.
	Association string `yaml:"association,omitempty"`
	Pos         string `yaml:"-"`
}

// Parse decodes a schema file. Unknown keys are rejected. The positions
// of schemas and columns are recorded as "path:line".
func Parse(path string, data []byte) (*File, error) {
	f := &File{Path: path}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		return nil, fmt.Errorf("load: parse %s: %w", path, err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("load: parse %s: %w", path, err)
	}
	f.positions(&root)
	return f, nil
}

// positions records the line of every schema and column node.
func (f *File) positions(root *yaml.Node) {
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	schemas := mappingValue(root, "schemas")
	if schemas == nil || schemas.Kind != yaml.SequenceNode {
		return
	}
	for i, sn := range schemas.Content {
		if i >= len(f.Schemas) || f.Schemas[i] == nil {
			break
		}
		s := f.Schemas[i]
		s.Pos = f.pos(sn)
		columns := mappingValue(sn, "columns")
		if columns == nil || columns.Kind != yaml.SequenceNode {
			continue
		}
		for j, cn := range columns.Content {
			if j >= len(s.Columns) || s.Columns[j] == nil {
				break
			}
			s.Columns[j].Pos = f.pos(cn)
		}
	}
}

func (f *File) pos(n *yaml.Node) string {
	return fmt.Sprintf("%s:%d", f.Path, n.Line)
}

// mappingValue returns the value node of key in a mapping node.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
