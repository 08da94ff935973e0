package gen

import (
	"fmt"
	"go/token"
	"path"
	"strings"

	"github.com/syssam/condgen/schema/field"
)

// Builder maps planned methods of one schema to method descriptors.
type Builder struct {
	schema  *Schema
	dialect string
	returns string
}

// NewBuilder creates a descriptor builder for the schema.
func NewBuilder(cfg *Config, s *Schema) *Builder {
	return &Builder{
		schema:  s,
		dialect: cfg.dialect(),
		returns: "*" + SelectorName(s),
	}
}

// SelectorName returns the name of the generated builder type of the schema.
func SelectorName(s *Schema) string {
	return s.Name + "Selector"
}

// AccessorName returns the expression of the column accessor the generated
// code refers to, e.g. "BookSchema.Title". Accessors are declared outside
// of the generated file.
func AccessorName(s *Schema, c *Column) string {
	return s.Name + "Schema." + pascal(c.Name)
}

// Build returns the descriptor of a planned method.
func (b *Builder) Build(p Planned) *MethodDescriptor {
	c := p.Column()
	m := &MethodDescriptor{
		Kind:    p.Kind,
		Column:  c.Name,
		Returns: b.returns,
	}
	esc := c.EscapedName(b.dialect)
	switch p.Kind {
	case KindIsNull, KindIsNotNull:
		m.Name, m.Symbol = c.Name+p.Kind.String(), pascal(c.Name)+p.Kind.String()
		op := " IS NULL"
		if p.Kind == KindIsNotNull {
			op = " IS NOT NULL"
		}
		m.Body = &Body{Kind: BodyWhere, SQL: esc + op}
	case KindEq, KindNotEq, KindLt, KindLe, KindGt, KindGe:
		m.Name, m.Symbol = c.Name+p.Kind.String(), pascal(c.Name)+p.Kind.String()
		if _, ok := p.Class.(AssociationColumn); ok {
			b.entityEq(m, p, esc)
			break
		}
		arg := paramName(ident(c.Name))
		m.Params = []*Param{scalarParam(arg, c.Type)}
		m.Body = &Body{
			Kind:       BodyWhere,
			SQL:        fmt.Sprintf("%s %s ?", esc, operators[p.Kind]),
			Arg:        arg,
			Serializer: b.serializer(c),
		}
	case KindEqByKey:
		b.keyEq(m, p, esc)
	case KindIn, KindNotIn:
		m.Name, m.Symbol = c.Name+p.Kind.String(), pascal(c.Name)+p.Kind.String()
		m.Params = []*Param{{Name: "values", Type: c.Type.Base(), Collection: true, NonNil: true}}
		m.Body = &Body{
			Kind:       BodyIn,
			SQL:        esc,
			Not:        p.Kind == KindNotIn,
			Arg:        "values",
			Serializer: b.serializer(c),
		}
	case KindInValues, KindNotInValues:
		suffix := "In"
		if p.Kind == KindNotInValues {
			suffix = "NotIn"
		}
		m.Name, m.Symbol = c.Name+suffix, pascal(c.Name)+suffix+"Values"
		m.Params = []*Param{{Name: "values", Type: c.Type.Base(), Variadic: true}}
		m.Body = &Body{
			Kind:   BodyForward,
			Arg:    "values",
			Target: pascal(c.Name) + suffix,
		}
	case KindOrderAsc, KindOrderDesc:
		dir := "Asc"
		if p.Kind == KindOrderDesc {
			dir = "Desc"
		}
		m.Name, m.Symbol = "orderBy"+upperFirst(c.Name)+dir, "OrderBy"+pascal(c.Name)+dir
		m.Body = &Body{
			Kind:     BodyOrder,
			Accessor: AccessorName(b.schema, c),
			Desc:     p.Kind == KindOrderDesc,
		}
	default:
		panic(fmt.Sprintf("condgen: unexpected method kind %s", p.Kind))
	}
	return m
}

// entityEq binds the primary key of the associated entity.
func (b *Builder) entityEq(m *MethodDescriptor, p Planned, esc string) {
	c := p.Column()
	arg := paramName(ident(c.Name))
	m.Params = []*Param{{Name: arg, Type: EntityType(p.Target), NonNil: true}}
	m.Body = &Body{
		Kind:     BodyWhere,
		SQL:      esc + " = ?",
		Arg:      arg,
		KeyField: pascal(p.Key.Name),
	}
}

// keyEq binds the raw foreign key value.
func (b *Builder) keyEq(m *MethodDescriptor, p Planned, esc string) {
	c := p.Column()
	m.Name = c.Name + KindEq.String()
	m.Symbol = pascal(c.Name) + KindEq.String() + "By" + pascal(p.Key.Name)
	arg := paramName(ident(c.Name + upperFirst(p.Key.Name)))
	m.Params = []*Param{scalarParam(arg, p.Key.Type)}
	m.Body = &Body{
		Kind: BodyWhere,
		SQL:  esc + " = ?",
		Arg:  arg,
	}
}

func (b *Builder) serializer(c *Column) string {
	if !c.NeedsAdapter {
		return ""
	}
	return AccessorName(b.schema, c)
}

// scalarParam binds the base type of t. A boxed primitive becomes a plain
// value parameter and is therefore never NonNil.
func scalarParam(name string, t *field.TypeInfo) *Param {
	base := t.Base()
	return &Param{Name: name, Type: base, NonNil: !base.Primitive()}
}

// EntityType returns the pointer type of the schema entity.
func EntityType(s *Schema) *field.TypeInfo {
	t := &field.TypeInfo{Type: field.TypeOther, Ident: s.Name, Nillable: true}
	if s.Package != "" {
		t.PkgPath = s.Package
		t.Ident = path.Base(s.Package) + "." + s.Name
	}
	return t
}

// ident returns name if it is a valid Go identifier in camel case,
// or its camel form.
func ident(name string) string {
	if token.IsIdentifier(name) && !strings.Contains(name, "_") {
		return name
	}
	return camel(name)
}
