package gen

import (
	"fmt"

	"github.com/syssam/condgen/schema/field"
)

// BodyKind identifies the builder primitive a method body calls.
type BodyKind uint8

// Body kinds.
const (
	// BodyWhere adds a predicate with an optional bound value.
	BodyWhere BodyKind = iota + 1
	// BodyIn adds a membership predicate over a collection.
	BodyIn
	// BodyForward delegates to another method of the same builder.
	BodyForward
	// BodyOrder adds an ordering term.
	BodyOrder
)

var bodyNames = [...]string{
	BodyWhere:   "where",
	BodyIn:      "in",
	BodyForward: "forward",
	BodyOrder:   "orderBy",
}

// String returns the name of the primitive.
func (k BodyKind) String() string {
	if k >= BodyWhere && k <= BodyOrder {
		return bodyNames[k]
	}
	return "invalid"
}

// MarshalText implements encoding.TextMarshaler.
func (k BodyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BodyKind) UnmarshalText(text []byte) error {
	for i := BodyWhere; i <= BodyOrder; i++ {
		if bodyNames[i] == string(text) {
			*k = i
			return nil
		}
	}
	return fmt.Errorf("condgen: unknown body kind %q", text)
}

// The following types describe a generated method independently of the
// language it is rendered to. A descriptor is created by the Builder and
// never modified afterwards.
type (
	// MethodDescriptor describes one condition or ordering helper.
	MethodDescriptor struct {
		// Name is the logical method name, e.g. "titleIn". The two forms of
		// an overloaded method share the same Name.
		Name string `json:"name" msgpack:"name"`
		// Symbol is the unique exported Go name, e.g. "TitleInValues".
		Symbol string `json:"symbol" msgpack:"symbol"`
		// Kind of the method.
		Kind MethodKind `json:"kind" msgpack:"kind"`
		// Column is the name of the column the method is generated for.
		Column string `json:"column" msgpack:"column"`
		// Params in declaration order.
		Params []*Param `json:"params,omitempty" msgpack:"params,omitempty"`
		// Returns is the type of the enclosing builder, e.g. "*BookSelector".
		Returns string `json:"returns" msgpack:"returns"`
		// Body describes the single builder call of the method.
		Body *Body `json:"body" msgpack:"body"`
	}

	// Param is a method parameter.
	Param struct {
		Name string          `json:"name" msgpack:"name"`
		Type *field.TypeInfo `json:"type" msgpack:"type"`
		// Collection marks a slice of Type.
		Collection bool `json:"collection,omitempty" msgpack:"collection,omitempty"`
		// Variadic marks a variadic slice of Type.
		Variadic bool `json:"variadic,omitempty" msgpack:"variadic,omitempty"`
		// NonNil marks parameters callers must not pass nil for.
		NonNil bool `json:"non_nil,omitempty" msgpack:"non_nil,omitempty"`
	}

	// Body is a symbolic call into the builder primitives.
	Body struct {
		Kind BodyKind `json:"kind" msgpack:"kind"`
		// SQL is the predicate text for BodyWhere, and the escaped column
		// for BodyIn. It is passed through unchanged.
		SQL string `json:"sql,omitempty" msgpack:"sql,omitempty"`
		// Not negates a BodyIn predicate.
		Not bool `json:"not,omitempty" msgpack:"not,omitempty"`
		// Arg is the name of the parameter bound or forwarded, if any.
		Arg string `json:"arg,omitempty" msgpack:"arg,omitempty"`
		// Serializer is the column accessor whose adapter converts bound
		// values, e.g. "BookSchema.Title". Empty means values bind unchanged.
		Serializer string `json:"serializer,omitempty" msgpack:"serializer,omitempty"`
		// KeyField is the Go field of Arg holding the associated primary key.
		KeyField string `json:"key_field,omitempty" msgpack:"key_field,omitempty"`
		// Target is the method symbol a BodyForward delegates to.
		Target string `json:"target,omitempty" msgpack:"target,omitempty"`
		// Accessor is the column accessor of a BodyOrder, e.g. "BookSchema.ID".
		Accessor string `json:"accessor,omitempty" msgpack:"accessor,omitempty"`
		// Desc selects descending order.
		Desc bool `json:"desc,omitempty" msgpack:"desc,omitempty"`
	}
)

// Param returns the first parameter, or nil.
func (m *MethodDescriptor) Param() *Param {
	if len(m.Params) == 0 {
		return nil
	}
	return m.Params[0]
}

// Signature returns a short Go-like signature of the method, e.g.
// "TitleIn(values []string) *BookSelector". It is used in logs and tables.
func (m *MethodDescriptor) Signature() string {
	args := ""
	for i, p := range m.Params {
		if i > 0 {
			args += ", "
		}
		args += p.Name + " " + p.GoType()
	}
	return fmt.Sprintf("%s(%s) %s", m.Symbol, args, m.Returns)
}

// GoType returns the Go type expression of the parameter.
func (p *Param) GoType() string {
	switch {
	case p.Variadic:
		return "..." + p.Type.String()
	case p.Collection:
		return "[]" + p.Type.String()
	default:
		return p.Type.String()
	}
}
