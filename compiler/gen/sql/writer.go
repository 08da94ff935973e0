package sql

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/condgen/compiler/gen"
)

// Writer renders generation results and writes them under the target
// directory of the config, in parallel.
type Writer struct {
	cfg *gen.Config
	out gen.OutputConfig

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks the output of a writer.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// NewWriter creates a writer for the config.
func NewWriter(cfg *gen.Config) (*Writer, error) {
	if cfg == nil || cfg.Target == "" {
		return nil, gen.NewConfigError("Target", nil, "missing target directory")
	}
	return &Writer{cfg: cfg, out: cfg.Output()}, nil
}

// Metrics returns a snapshot of the writer metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// FileName returns the name of the file generated for a schema,
// e.g. "book_where.go".
func FileName(r *gen.Result) string {
	return gen.Snake(r.Name) + "_where.go"
}

// Write writes one file per result and returns the written paths in
// result order.
func (w *Writer) Write(ctx context.Context, results []*gen.Result) ([]string, error) {
	if err := os.MkdirAll(w.out.Target, 0o755); err != nil {
		return nil, gen.NewGenerationError("write", "", "create target directory", err)
	}
	workers := w.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	paths := make([]string, len(results))
	errg, gctx := errgroup.WithContext(ctx)
	errg.SetLimit(workers)
	for i, r := range results {
		errg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := w.writeFile(r)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return paths, ctx.Err()
}

// writeFile renders and formats the file of one result.
func (w *Writer) writeFile(r *gen.Result) (string, error) {
	name := FileName(r)
	path := filepath.Join(w.out.Target, name)

	var buf bytes.Buffer
	if err := Render(w.cfg, r).Render(&buf); err != nil {
		return "", &gen.GenerationError{Phase: "render", Schema: r.Name, File: name, Cause: err}
	}
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output next to the target for inspection.
		debug := path + ".error"
		_ = os.WriteFile(debug, buf.Bytes(), 0o644)
		return "", &gen.GenerationError{Phase: "render", Schema: r.Name, File: name, Message: "format (unformatted written to " + debug + ")", Cause: err}
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return "", &gen.GenerationError{Phase: "write", Schema: r.Name, File: name, Cause: err}
	}

	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(formatted))
	w.mu.Unlock()
	w.cfg.Log().Debug("wrote selector file", "schema", r.Name, "path", path, "methods", len(r.Methods))
	return path, nil
}

// Generate plans the schemas of the registry and writes their files.
// With ContinueOnError, the files of the schemas that succeeded are
// written and the schema failures are returned joined.
func Generate(ctx context.Context, cfg *gen.Config, reg *gen.Registry) ([]string, error) {
	w, err := NewWriter(cfg)
	if err != nil {
		return nil, err
	}
	results, genErr := gen.Generate(ctx, cfg, reg)
	if genErr != nil && !cfg.ContinueOnError {
		return nil, genErr
	}
	paths, err := w.Write(ctx, results)
	if err != nil {
		return nil, errors.Join(genErr, err)
	}
	return paths, genErr
}
