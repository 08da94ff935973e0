package gen

// ColumnClass is the classification of a column. It is one of
// PlainColumn or AssociationColumn.
type ColumnClass interface {
	// Column returns the classified column.
	Column() *Column
	isColumnClass()
}

// PlainColumn is a scalar column.
type PlainColumn struct {
	C *Column
}

// AssociationColumn is a foreign-key column referencing another schema.
type AssociationColumn struct {
	C           *Column
	Association *Association
}

// Column implements ColumnClass.
func (p PlainColumn) Column() *Column { return p.C }

// Column implements ColumnClass.
func (a AssociationColumn) Column() *Column { return a.C }

func (PlainColumn) isColumnClass()       {}
func (AssociationColumn) isColumnClass() {}

// Classify returns the classification of the column. A column is an
// association iff its Association is set.
func Classify(c *Column) ColumnClass {
	if c.Association != nil {
		return AssociationColumn{C: c, Association: c.Association}
	}
	return PlainColumn{C: c}
}

// ClassName returns a short name of the classification, used in logs
// and tables.
func ClassName(cls ColumnClass) string {
	switch cls.(type) {
	case PlainColumn:
		return "plain"
	case AssociationColumn:
		return "association"
	default:
		return "unknown"
	}
}
