package cli

import (
	"errors"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/syssam/condgen/compiler/gen"
	"github.com/syssam/condgen/compiler/load"
)

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [schema paths...]",
		Short: "Show the helpers planned for every column",
		Long: `Show the condition and ordering helpers planned for every column, without
writing any file. Schemas that fail are listed with their error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := Config(cmd.Context())
			if len(args) > 0 {
				cfg.Schemas = args
			}
			log := Logger(cmd.Context())
			reg, err := (&load.Config{Paths: cfg.Schemas, Logger: log}).Load()
			if err != nil {
				return err
			}
			gcfg, err := gen.NewConfig(cfg.Options(log)...)
			if err != nil {
				return err
			}
			return renderPlan(cmd.OutOrStdout(), gcfg, reg)
		},
	}
}

// renderPlan writes a table of the planned methods of every schema.
func renderPlan(w io.Writer, cfg *gen.Config, reg *gen.Registry) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Schema", "Column", "Class", "Method", "Signature"})

	var errs []error
	for _, s := range reg.Schemas() {
		methods, err := gen.Helpers(cfg, reg, s)
		if err != nil {
			t.AppendRow(table.Row{s.Name, "", "", "error", err.Error()})
			errs = append(errs, err)
			continue
		}
		for _, m := range methods {
			class := ""
			if c := s.Column(m.Column); c != nil {
				class = gen.ClassName(gen.Classify(c))
			}
			t.AppendRow(table.Row{s.Name, m.Column, class, m.Name, m.Signature()})
		}
		t.AppendSeparator()
	}
	t.Render()
	return errors.Join(errs...)
}
