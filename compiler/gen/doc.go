// Package gen builds the condition and ordering helpers of query-condition
// builders from table schemas.
//
// The package is the language-agnostic core of condgen. It never produces
// source text: it turns schemas into ordered method descriptors, and leaves
// rendering to the sql subpackage or to any other emitter reading the
// encoded descriptors.
//
// # Pipeline
//
//	Schema (loaded by compiler/load)
//	        ↓
//	   Classify (plain or association column)
//	        ↓
//	   Planner (method set per column)
//	        ↓
//	   Builder (one MethodDescriptor per planned method)
//	        ↓
//	   []*MethodDescriptor (rendered or encoded)
//
// # Method Set
//
// Every indexed or primary key column gets condition helpers. For the
// scenario schema
//
//	Book
//	├── id          int, primary key, autoincrement
//	├── title       string, indexed, nullable
//	└── publisherId → Publisher (primary key "name")
//
// the generated builder has, in order:
//
//	IDEq IDNotEq IDIn IDNotIn IDInValues IDNotInValues IDLt IDLe IDGt IDGe
//	TitleIsNull TitleIsNotNull TitleEq ... TitleGe
//	PublisherIDEq(*Publisher) PublisherIDEqByName(string)
//	OrderByIDAsc OrderByIDDesc OrderByTitleAsc OrderByTitleDesc
//
// Association columns only get the two equality overloads (and the null
// checks if nullable). They never get ordering helpers.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: an association target without a primary key, or an
//     invalid registry
//   - ConfigError: invalid options
//   - GenerationError: a per-schema failure of Generate, wrapping the cause
//
// Example error handling:
//
//	results, err := gen.Generate(ctx, cfg, reg)
//	if err != nil {
//	    if gen.IsSchemaError(err) {
//	        // Report the position of the offending association.
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./query"),
//	    gen.WithDialect("postgres"),
//	    gen.WithWorkers(4),
//	)
package gen
