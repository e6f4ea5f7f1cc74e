package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"doccleaner/internal/logging"
	"doccleaner/internal/pipeline"
	"doccleaner/internal/preflight"
)

func runOrganize(cmd *cobra.Command, ctx *commandContext, folder string, recursive, dryRun bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	checks := preflight.RunAll(cfg, folder, dryRun)
	if err := preflight.FirstFatal(checks); err != nil {
		return err
	}
	for _, warn := range preflight.Warnings(checks) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_warning",
			logging.String("check", warn.Name),
			logging.String("detail", warn.Detail),
			logging.String(logging.FieldImpact, "run continues; affected files may be left in place or filed under the fallback topic"),
			logging.String(logging.FieldErrorHint, "run doccleaner status to review directory permissions and extensions"),
		)
	}

	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintf(out, "Starting DocCleaner (dry run) on: %s\n", folder)
	} else {
		fmt.Fprintf(out, "Starting DocCleaner on: %s\n", folder)
	}

	runner := pipeline.New(afero.NewOsFs(), cfg, logger)
	summary, err := runner.Run(cmd.Context(), pipeline.Options{
		Root:      folder,
		Recursive: recursive,
		DryRun:    dryRun,
	})
	if err != nil {
		return err
	}
	printSummary(newConsole(out), summary)
	return nil
}

// printSummary renders the run counters. Dry runs report where files would go.
func printSummary(con *console, summary *pipeline.Summary) {
	title := "DocCleaner Execution Complete"
	moved := "Duplicates moved"
	if summary.DryRun {
		title = "DocCleaner Dry Run Complete"
		moved = "Duplicates to move"
	}
	rows := []table.Row{
		{"Total files scanned", summary.Scanned},
		{moved, summary.Duplicates},
		{"Files organized", summary.Organized},
		{"Errors", summary.Errors},
		{"Output location", summary.OutputDir},
	}
	if summary.ManifestPath != "" {
		rows = append(rows, table.Row{"Manifest", summary.ManifestPath})
	}
	rows = append(rows, table.Row{"Run ID", summary.RunID})
	con.table(title, table.Row{"Metric", "Value"}, rows)
}
