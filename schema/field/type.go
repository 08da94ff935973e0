package field

import (
	"fmt"
	"go/token"
	"strings"
)

// A Type represents a declared column type.
type Type uint8

// List of declared column types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeJSON
	TypeUUID
	TypeBytes
	TypeEnum
	TypeString
	TypeOther
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint
	TypeUint64
	TypeFloat32
	TypeFloat64
	endTypes
)

var (
	typeNames = [...]string{
		TypeInvalid: "invalid",
		TypeBool:    "bool",
		TypeTime:    "time.Time",
		TypeJSON:    "json.RawMessage",
		TypeUUID:    "uuid.UUID",
		TypeBytes:   "[]byte",
		TypeEnum:    "string",
		TypeString:  "string",
		TypeOther:   "other",
		TypeInt:     "int",
		TypeInt8:    "int8",
		TypeInt16:   "int16",
		TypeInt32:   "int32",
		TypeInt64:   "int64",
		TypeUint:    "uint",
		TypeUint8:   "uint8",
		TypeUint16:  "uint16",
		TypeUint32:  "uint32",
		TypeUint64:  "uint64",
		TypeFloat32: "float32",
		TypeFloat64: "float64",
	}
	constNames = [...]string{
		TypeJSON:    "TypeJSON",
		TypeUUID:    "TypeUUID",
		TypeTime:    "TypeTime",
		TypeEnum:    "TypeEnum",
		TypeBytes:   "TypeBytes",
		TypeOther:   "TypeOther",
		TypeBool:    "TypeBool",
		TypeString:  "TypeString",
		TypeInt:     "TypeInt",
		TypeInt8:    "TypeInt8",
		TypeInt16:   "TypeInt16",
		TypeInt32:   "TypeInt32",
		TypeInt64:   "TypeInt64",
		TypeUint:    "TypeUint",
		TypeUint8:   "TypeUint8",
		TypeUint16:  "TypeUint16",
		TypeUint32:  "TypeUint32",
		TypeUint64:  "TypeUint64",
		TypeFloat32: "TypeFloat32",
		TypeFloat64: "TypeFloat64",
	}
	// pkgPaths holds the import paths of the non-builtin standard types.
	pkgPaths = map[Type]string{
		TypeTime: "time",
		TypeJSON: "encoding/json",
		TypeUUID: "github.com/google/uuid",
	}
	// shortNames maps the type names accepted by Parse.
	shortNames = map[string]Type{
		"bool":    TypeBool,
		"time":    TypeTime,
		"json":    TypeJSON,
		"uuid":    TypeUUID,
		"bytes":   TypeBytes,
		"enum":    TypeEnum,
		"string":  TypeString,
		"int":     TypeInt,
		"int8":    TypeInt8,
		"int16":   TypeInt16,
		"int32":   TypeInt32,
		"int64":   TypeInt64,
		"uint":    TypeUint,
		"uint8":   TypeUint8,
		"uint16":  TypeUint16,
		"uint32":  TypeUint32,
		"uint64":  TypeUint64,
		"float32": TypeFloat32,
		"float64": TypeFloat64,
	}
)

// String returns the string representation of a type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt8 && t < endTypes
}

// Float reports if the given type is a float type.
func (t Type) Float() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// Integer reports if the given type is an integral type.
func (t Type) Integer() bool {
	return t.Numeric() && !t.Float()
}

// Valid reports if the given type if known type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// ConstName returns the constant name of an info type.
// It's used by entc for printing the constant name in templates.
func (t Type) ConstName() string {
	if !t.Valid() {
		return typeNames[TypeInvalid]
	}
	return constNames[t]
}

// TypeInfo holds the declared type information of a column.
type TypeInfo struct {
	// Type is the kind of the declared type.
	Type Type `json:"type" msgpack:"type"`
	// Ident is the qualified Go identifier of the type, for example
	// "uuid.UUID" or "books.Status". Empty for builtin types.
	Ident string `json:"ident,omitempty" msgpack:"ident,omitempty"`
	// PkgPath is the import path of Ident.
	PkgPath string `json:"pkg_path,omitempty" msgpack:"pkg_path,omitempty"`
	// Nillable marks the boxed form of the type. In Go, a pointer.
	Nillable bool `json:"nillable,omitempty" msgpack:"nillable,omitempty"`
}

// String returns the Go type expression of the type, e.g. "*int64".
func (t TypeInfo) String() string {
	var s string
	switch {
	case t.Ident != "":
		s = t.Ident
	case t.Type == TypeOther:
		s = "any"
	default:
		s = t.Type.String()
	}
	if t.Nillable {
		return "*" + s
	}
	return s
}

// Base returns the non-boxed form of the type.
func (t TypeInfo) Base() *TypeInfo {
	t.Nillable = false
	return &t
}

// Name returns the unqualified type name, e.g. "UUID" for "uuid.UUID".
// It returns an empty string for builtin types.
func (t TypeInfo) Name() string {
	ident := t.Ident
	if ident == "" {
		if _, ok := pkgPaths[t.Type]; !ok {
			return ""
		}
		ident = t.Type.String()
	}
	if i := strings.LastIndexByte(ident, '.'); i >= 0 {
		return ident[i+1:]
	}
	return ident
}

// Path returns the import path of the type, or an empty string
// for builtin types.
func (t TypeInfo) Path() string {
	if t.PkgPath != "" {
		return t.PkgPath
	}
	if t.Ident != "" {
		return ""
	}
	return pkgPaths[t.Type]
}

// Primitive reports if values of the type can never be nil.
// Boxed types, byte slices, JSON documents and opaque types may be nil.
func (t TypeInfo) Primitive() bool {
	if t.Nillable {
		return false
	}
	switch {
	case t.Type == TypeBool, t.Type == TypeString, t.Type == TypeEnum, t.Type.Numeric():
		return true
	default:
		return false
	}
}

// Parse parses a declared type string. The accepted forms are the short
// names ("int64", "string", "time", "uuid", ...), a leading "*" for the
// boxed form, and "import/path.Ident" for custom types.
func Parse(s string) (*TypeInfo, error) {
	s = strings.TrimSpace(s)
	info := &TypeInfo{}
	if strings.HasPrefix(s, "*") {
		info.Nillable = true
		s = s[1:]
	}
	if s == "" {
		return nil, fmt.Errorf("field: empty type")
	}
	if t, ok := shortNames[s]; ok {
		info.Type = t
		return info, nil
	}
	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return nil, fmt.Errorf("field: unknown type %q", s)
	}
	pkgPath, name := s[:i], s[i+1:]
	if !token.IsIdentifier(name) {
		return nil, fmt.Errorf("field: invalid type name %q", name)
	}
	info.Type = TypeOther
	info.PkgPath = pkgPath
	info.Ident = pkgPath[strings.LastIndexByte(pkgPath, '/')+1:] + "." + name
	return info, nil
}
