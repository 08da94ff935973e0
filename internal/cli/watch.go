package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/condgen/compiler/load"
)

// debounce is the quiet period after a schema change before regenerating.
const debounce = 100 * time.Millisecond

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [schema paths...]",
		Short: "Regenerate on schema changes",
		Long: `Generate once, then regenerate whenever a schema file changes. Failed
runs are logged and watching continues. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := Config(ctx)
			if len(args) > 0 {
				cfg.Schemas = args
			}
			log := Logger(ctx)
			out := cmd.OutOrStdout()
			regenerate := func(ctx context.Context) error {
				return runGenerate(ctx, cfg, log, out)
			}
			if err := regenerate(ctx); err != nil {
				log.Error("generation failed", "error", err)
			}
			return watchSchemas(ctx, cfg.Schemas, debounce, log, regenerate)
		},
	}
}

// watchSchemas calls onChange after schema files under paths change, until
// ctx is done. Directories are watched non-recursively, matching the loader.
func watchSchemas(ctx context.Context, paths []string, quiet time.Duration, log *slog.Logger, onChange func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { _ = w.Close() }()

	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		log.Debug("watching", "path", dir)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isSchemaEvent(ev) {
				continue
			}
			log.Debug("schema changed", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(quiet)
			} else {
				timer.Reset(quiet)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				log.Error("generation failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}

func isSchemaEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(load.Extensions, strings.ToLower(filepath.Ext(ev.Name)))
}
