package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/syssam/condgen/compiler/gen"
	gensql "github.com/syssam/condgen/compiler/gen/sql"
	"github.com/syssam/condgen/compiler/load"
	"github.com/syssam/condgen/internal/cli/config"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate [schema paths...]",
		Short: "Generate condition helpers",
		Long: `Generate condition helpers for the schemas.

With the go format, one <entity>_where.go file per schema is written to the
target directory and the written paths are printed. With the json and
msgpack formats, the method descriptors are written to standard output.`,
		Example: `  # Generate from the schemas of condgen.yaml
  condgen generate

  # Generate from a directory into internal/query
  condgen generate ./schema -o internal/query --package example.com/app/internal/query

  # Print the descriptors as JSON
  condgen generate ./schema --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := Config(cmd.Context())
			if len(args) > 0 {
				cfg.Schemas = args
			}
			return runGenerate(cmd.Context(), cfg, Logger(cmd.Context()), cmd.OutOrStdout())
		},
	}
}

// runGenerate loads the schemas and generates their helpers in the
// configured format.
func runGenerate(ctx context.Context, cfg *config.Config, log *slog.Logger, out io.Writer) error {
	reg, err := (&load.Config{Paths: cfg.Schemas, Logger: log}).Load()
	if err != nil {
		return err
	}
	gcfg, err := gen.NewConfig(cfg.Options(log)...)
	if err != nil {
		return err
	}

	if cfg.Format == config.FormatGo {
		paths, err := gensql.Generate(ctx, gcfg, reg)
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
		if err != nil {
			return err
		}
		log.Info("generated condition helpers", "files", len(paths), "target", gcfg.Target)
		return nil
	}

	results, genErr := gen.Generate(ctx, gcfg, reg)
	if genErr != nil && !gcfg.ContinueOnError {
		return genErr
	}
	if err := gen.EncodeResults(out, cfg.Format, results); err != nil {
		return errors.Join(genErr, err)
	}
	return genErr
}
