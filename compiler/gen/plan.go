package gen

import (
	"fmt"
	"log/slog"
)

// MethodKind identifies a generated helper method.
type MethodKind uint8

// Method kinds, in canonical emission order within a column.
const (
	KindInvalid MethodKind = iota
	KindIsNull
	KindIsNotNull
	KindEq
	KindEqByKey
	KindNotEq
	KindIn
	KindNotIn
	KindInValues
	KindNotInValues
	KindLt
	KindLe
	KindGt
	KindGe
	KindOrderAsc
	KindOrderDesc
	endKinds
)

var kindNames = [...]string{
	KindInvalid:     "Invalid",
	KindIsNull:      "IsNull",
	KindIsNotNull:   "IsNotNull",
	KindEq:          "Eq",
	KindEqByKey:     "EqByKey",
	KindNotEq:       "NotEq",
	KindIn:          "In",
	KindNotIn:       "NotIn",
	KindInValues:    "InValues",
	KindNotInValues: "NotInValues",
	KindLt:          "Lt",
	KindLe:          "Le",
	KindGt:          "Gt",
	KindGe:          "Ge",
	KindOrderAsc:    "OrderAsc",
	KindOrderDesc:   "OrderDesc",
}

// String returns the name of the kind.
func (k MethodKind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// MarshalText implements encoding.TextMarshaler.
func (k MethodKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MethodKind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if i > int(KindInvalid) && name == string(text) {
			*k = MethodKind(i)
			return nil
		}
	}
	return fmt.Errorf("condgen: unknown method kind %q", text)
}

// Order reports if the kind is an ordering helper.
func (k MethodKind) Order() bool {
	return k == KindOrderAsc || k == KindOrderDesc
}

// Variadic reports if the kind is a varargs overload of a collection method.
func (k MethodKind) Variadic() bool {
	return k == KindInValues || k == KindNotInValues
}

// operators of the comparison kinds.
var operators = map[MethodKind]string{
	KindEq:    "=",
	KindNotEq: "<>",
	KindLt:    "<",
	KindLe:    "<=",
	KindGt:    ">",
	KindGe:    ">=",
}

// plainKinds follow Eq for plain columns.
var plainKinds = []MethodKind{
	KindNotEq,
	KindIn,
	KindNotIn,
	KindInValues,
	KindNotInValues,
	KindLt,
	KindLe,
	KindGt,
	KindGe,
}

// Planned is a method the planner decided to generate for a column.
type Planned struct {
	Class ColumnClass
	Kind  MethodKind
	// Target and Key are the associated schema and its primary key.
	// They are set only for association columns.
	Target *Schema
	Key    *Column
}

// Column returns the column the method is planned for.
func (p Planned) Column() *Column {
	return p.Class.Column()
}

// Planner decides the helper method set of schemas.
// It is safe for concurrent use across schemas.
type Planner struct {
	reg *Registry
	log *slog.Logger
}

// NewPlanner creates a planner resolving associations through reg.
func NewPlanner(reg *Registry, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Planner{reg: reg, log: logger}
}

// Plan returns the condition methods of the schema, followed by the
// ordering methods when orders is set.
func (p *Planner) Plan(s *Schema, orders bool) ([]Planned, error) {
	planned, err := p.Conditions(s)
	if err != nil {
		return nil, err
	}
	if orders {
		planned = append(planned, p.Orders(s)...)
	}
	return planned, nil
}

// Conditions returns the condition methods of the indexed and primary key
// columns, in declaration order. It fails with a *SchemaError if the target
// of an association has no primary key.
func (p *Planner) Conditions(s *Schema) ([]Planned, error) {
	var planned []Planned
	for _, c := range s.Columns {
		if !c.HasConditions() {
			continue
		}
		cls := Classify(c)
		if c.Nullable {
			planned = append(planned,
				Planned{Class: cls, Kind: KindIsNull},
				Planned{Class: cls, Kind: KindIsNotNull},
			)
		}
		switch cls := cls.(type) {
		case PlainColumn:
			planned = append(planned, Planned{Class: cls, Kind: KindEq})
			for _, k := range plainKinds {
				planned = append(planned, Planned{Class: cls, Kind: k})
			}
		case AssociationColumn:
			target, err := p.target(s, cls)
			if err != nil {
				return nil, err
			}
			planned = append(planned,
				Planned{Class: cls, Kind: KindEq, Target: target, Key: target.PrimaryKey},
				Planned{Class: cls, Kind: KindEqByKey, Target: target, Key: target.PrimaryKey},
			)
		default:
			panic(fmt.Sprintf("condgen: unexpected column class %T", cls))
		}
		p.log.Debug("planned condition helpers",
			"schema", s.Name, "column", c.Name, "class", ClassName(cls))
	}
	return planned, nil
}

// Orders returns the ordering methods of the schema, in declaration order.
// Association columns never get ordering helpers.
func (p *Planner) Orders(s *Schema) []Planned {
	var planned []Planned
	for _, c := range s.Columns {
		if !c.HasOrders() {
			continue
		}
		switch cls := Classify(c).(type) {
		case PlainColumn:
			planned = append(planned,
				Planned{Class: cls, Kind: KindOrderAsc},
				Planned{Class: cls, Kind: KindOrderDesc},
			)
		case AssociationColumn:
			p.log.Debug("skipped ordering helpers of association",
				"schema", s.Name, "column", c.Name)
		}
	}
	return planned
}

// target resolves the associated schema and checks it has a primary key.
func (p *Planner) target(s *Schema, cls AssociationColumn) (*Schema, error) {
	c := cls.C
	target, ok := p.reg.Target(cls.Association)
	if !ok {
		return nil, &SchemaError{
			Type:    cls.Association.Type,
			Field:   c.Name,
			Schema:  s.Name,
			Pos:     c.Pos,
			Message: "unresolved association target",
		}
	}
	if !target.HasPrimaryKey() {
		pos := c.Pos
		if pos == "" {
			pos = target.Pos
		}
		return nil, &SchemaError{
			Type:    target.Name,
			Field:   c.Name,
			Schema:  s.Name,
			Pos:     pos,
			Message: fmt.Sprintf("missing primary key for %s", target.Name),
		}
	}
	return target, nil
}
