package sql

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/condgen/compiler/gen"
	"github.com/syssam/condgen/schema/field"
)

// runtimePkg is the import path of the builder primitives generated code calls.
const runtimePkg = "github.com/syssam/condgen/dialect/sql"

// receiver is the receiver name of generated methods. Parameter names
// never collide with it.
const receiver = "s"

// Render renders the selector file of one schema.
func Render(cfg *gen.Config, r *gen.Result) *jen.File {
	out := cfg.Output()
	var f *jen.File
	if out.Package != "" {
		f = jen.NewFilePathName(out.Package, out.Name)
	} else {
		f = jen.NewFile(out.Name)
	}
	f.HeaderComment(out.Header)
	f.ImportName(runtimePkg, "sql")

	genSelector(f, cfg, r)
	for _, m := range r.Methods {
		genMethod(f, r, m)
	}
	return f
}

// genSelector generates the selector type and its constructor.
func genSelector(f *jen.File, cfg *gen.Config, r *gen.Result) {
	f.Commentf("%s builds SELECT statements over the %s table.", r.Selector, r.Table)
	f.Type().Id(r.Selector).Struct(
		jen.Op("*").Qual(runtimePkg, "Selector"),
	)

	ctor := "New" + r.Selector
	f.Commentf("%s returns a selector of the given columns. No columns selects all.", ctor)
	f.Func().Id(ctor).Params(
		jen.Id("columns").Op("...").String(),
	).Op("*").Id(r.Selector).Block(
		jen.Return(jen.Op("&").Id(r.Selector).Values(
			jen.Id("Selector").Op(":").Qual(runtimePkg, "Dialect").Call(jen.Lit(cfg.DialectName())).
				Dot("Select").Call(jen.Lit(r.Table), jen.Id("columns").Op("...")),
		)),
	)
}

// genMethod generates one helper method. Every helper returns its receiver.
func genMethod(f *jen.File, r *gen.Result, m *gen.MethodDescriptor) {
	for _, line := range strings.Split(doc(m), "\n") {
		f.Comment(line)
	}
	params := make([]jen.Code, len(m.Params))
	for i, p := range m.Params {
		params[i] = jen.Id(p.Name).Add(paramType(p))
	}
	f.Func().Params(jen.Id(receiver).Op("*").Id(r.Selector)).
		Id(m.Symbol).Params(params...).
		Op("*").Id(r.Selector).
		Block(body(m)...)
}

// body returns the statements of a method body.
func body(m *gen.MethodDescriptor) []jen.Code {
	b := m.Body
	s := jen.Id(receiver)
	switch b.Kind {
	case gen.BodyWhere:
		args := []jen.Code{jen.Lit(b.SQL)}
		if b.Arg != "" {
			args = append(args, bound(b))
		}
		return []jen.Code{
			s.Clone().Dot("Where").Call(args...),
			jen.Return(s.Clone()),
		}
	case gen.BodyIn:
		ser := jen.Nil()
		if b.Serializer != "" {
			ser = accessor(b.Serializer).Dot("Serialize")
		}
		return []jen.Code{
			jen.Qual(runtimePkg, "In").Call(
				s.Clone().Dot("Selector"),
				jen.Lit(b.Not),
				jen.Lit(b.SQL),
				jen.Id(b.Arg),
				ser,
			),
			jen.Return(s.Clone()),
		}
	case gen.BodyForward:
		return []jen.Code{
			jen.Return(s.Clone().Dot(b.Target).Call(jen.Id(b.Arg))),
		}
	case gen.BodyOrder:
		dir := "Asc"
		if b.Desc {
			dir = "Desc"
		}
		return []jen.Code{
			s.Clone().Dot("OrderBy").Call(accessor(b.Accessor).Dot(dir).Call()),
			jen.Return(s.Clone()),
		}
	default:
		panic(fmt.Sprintf("condgen: unexpected body kind %s of %s", b.Kind, m.Symbol))
	}
}

// bound returns the expression of the value bound by a BodyWhere.
func bound(b *gen.Body) jen.Code {
	switch {
	case b.KeyField != "":
		return jen.Id(b.Arg).Dot(b.KeyField)
	case b.Serializer != "":
		return accessor(b.Serializer).Dot("Serialize").Call(jen.Id(b.Arg))
	default:
		return jen.Id(b.Arg)
	}
}

// accessor returns the expression of a dotted accessor, e.g. "BookSchema.Title".
func accessor(name string) *jen.Statement {
	parts := strings.Split(name, ".")
	s := jen.Id(parts[0])
	for _, p := range parts[1:] {
		s = s.Dot(p)
	}
	return s
}

func paramType(p *gen.Param) jen.Code {
	switch {
	case p.Variadic:
		return jen.Op("...").Add(typeCode(p.Type))
	case p.Collection:
		return jen.Index().Add(typeCode(p.Type))
	default:
		return typeCode(p.Type)
	}
}

// typeCode returns the Go type of a declared type. Types of other
// packages are qualified and imported.
func typeCode(t *field.TypeInfo) *jen.Statement {
	var c *jen.Statement
	switch {
	case t.Path() != "":
		c = jen.Qual(t.Path(), t.Name())
	case t.Type == field.TypeBytes && t.Ident == "":
		c = jen.Index().Byte()
	default:
		c = jen.Id(t.Base().String())
	}
	if t.Nillable {
		return jen.Op("*").Add(c)
	}
	return c
}

// doc returns the doc comment of a method.
func doc(m *gen.MethodDescriptor) string {
	var d string
	switch m.Kind {
	case gen.KindIsNull:
		d = fmt.Sprintf("%s matches rows where %s is NULL.", m.Symbol, m.Column)
	case gen.KindIsNotNull:
		d = fmt.Sprintf("%s matches rows where %s is not NULL.", m.Symbol, m.Column)
	case gen.KindEq:
		if m.Body.KeyField != "" {
			d = fmt.Sprintf("%s matches rows referencing the given %s.", m.Symbol, strings.TrimPrefix(m.Param().GoType(), "*"))
		} else {
			d = fmt.Sprintf("%s matches rows where %s equals %s.", m.Symbol, m.Column, m.Param().Name)
		}
	case gen.KindEqByKey:
		d = fmt.Sprintf("%s matches rows where %s equals the key %s.", m.Symbol, m.Column, m.Param().Name)
	case gen.KindNotEq:
		d = fmt.Sprintf("%s matches rows where %s differs from %s.", m.Symbol, m.Column, m.Param().Name)
	case gen.KindLt, gen.KindLe, gen.KindGt, gen.KindGe:
		fields := strings.Fields(m.Body.SQL)
		d = fmt.Sprintf("%s matches rows where %s %s %s.", m.Symbol, m.Column, fields[len(fields)-2], m.Param().Name)
	case gen.KindIn:
		d = fmt.Sprintf("%s matches rows where %s is one of values.\nAn empty list matches no rows.", m.Symbol, m.Column)
	case gen.KindNotIn:
		d = fmt.Sprintf("%s matches rows where %s is none of values.\nAn empty list matches all rows.", m.Symbol, m.Column)
	case gen.KindInValues, gen.KindNotInValues:
		d = fmt.Sprintf("%s is the variadic form of %s.", m.Symbol, m.Body.Target)
	case gen.KindOrderAsc:
		d = fmt.Sprintf("%s orders rows by %s in ascending order.", m.Symbol, m.Column)
	case gen.KindOrderDesc:
		d = fmt.Sprintf("%s orders rows by %s in descending order.", m.Symbol, m.Column)
	}
	for _, p := range m.Params {
		if p.NonNil {
			d += fmt.Sprintf("\nThe %s argument must not be nil.", p.Name)
		}
	}
	return d
}
