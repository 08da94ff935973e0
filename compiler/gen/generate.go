package gen

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Result holds the descriptors generated for one schema.
type Result struct {
	// Schema is the input schema. It is not encoded.
	Schema *Schema `json:"-" msgpack:"-"`
	// Name is the entity name of the schema.
	Name string `json:"schema" msgpack:"schema"`
	// Table is the SQL table of the schema.
	Table string `json:"table,omitempty" msgpack:"table,omitempty"`
	// Selector is the name of the generated builder type.
	Selector string `json:"selector" msgpack:"selector"`
	// Methods in emission order.
	Methods []*MethodDescriptor `json:"methods" msgpack:"methods"`
}

// Helpers returns the condition helpers of the schema followed by its
// ordering helpers (if enabled in the config), in emission order. A
// *SchemaError aborts the schema and no descriptors are returned.
func Helpers(cfg *Config, reg *Registry, s *Schema) ([]*MethodDescriptor, error) {
	if cfg == nil {
		cfg = defaultConfig()
	}
	planned, err := NewPlanner(reg, cfg.logger()).Plan(s, cfg.OrderHelpers)
	if err != nil {
		return nil, err
	}
	b := NewBuilder(cfg, s)
	methods := make([]*MethodDescriptor, 0, len(planned))
	for _, p := range planned {
		methods = append(methods, b.Build(p))
	}
	return methods, nil
}

// Generate builds the helpers of the given schemas, or of all registered
// schemas if none are given. Schemas are processed in parallel, limited by
// Config.Workers, and results are returned in input order.
//
// A failing schema aborts the run unless Config.ContinueOnError is set, in
// which case the results of the other schemas are returned together with
// the joined errors. Every failure is a *GenerationError wrapping the cause.
func Generate(ctx context.Context, cfg *Config, reg *Registry, schemas ...*Schema) ([]*Result, error) {
	if cfg == nil {
		cfg = defaultConfig()
	}
	if len(schemas) == 0 {
		schemas = reg.Schemas()
	}
	log := cfg.logger()
	var (
		results = make([]*Result, len(schemas))
		errs    = make([]error, len(schemas))
	)
	errg, gctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		errg.SetLimit(cfg.Workers)
	}
	for i, s := range schemas {
		if gctx.Err() != nil {
			break
		}
		errg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			methods, err := Helpers(cfg, reg, s)
			if err != nil {
				gerr := NewGenerationError("plan", s.Name, "", err)
				log.Debug("schema failed", "schema", s.Name, "error", err)
				if cfg.ContinueOnError {
					errs[i] = gerr
					return nil
				}
				return gerr
			}
			results[i] = &Result{
				Schema:   s,
				Name:     s.Name,
				Table:    s.Table,
				Selector: SelectorName(s),
				Methods:  methods,
			}
			log.Debug("generated helpers", "schema", s.Name, "methods", len(methods))
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, errors.Join(errs...)
}
