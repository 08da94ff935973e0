// Package field describes the declared types of schema columns.
//
// A column type is a Type (the kind) plus, for custom types, the Go
// identifier and import path it resolves to:
//
//	field.TypeInfo{Type: field.TypeInt64}                      // int64
//	field.TypeInfo{Type: field.TypeString, Nillable: true}     // *string
//	field.TypeInfo{Type: field.TypeOther, Ident: "books.Status",
//		PkgPath: "example.com/app/books"}                      // books.Status
//
// Parse accepts the textual form used in schema files:
//
//	field.Parse("int64")
//	field.Parse("*string")
//	field.Parse("uuid")
//	field.Parse("example.com/app/books.Status")
package field
