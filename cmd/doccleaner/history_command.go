package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"doccleaner/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openHistory(cmd, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			con := newConsole(cmd.OutOrStdout())
			if jsonOutput {
				if runs == nil {
					runs = []history.Run{}
				}
				return con.json(runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(con.out, "No runs recorded")
				return nil
			}
			con.table("", table.Row{"Run ID", "Started", "Root", "Scanned", "Duplicates", "Organized", "Errors"},
				historyRows(runs), 4, 5, 6, 7)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func historyRows(runs []history.Run) []table.Row {
	rows := make([]table.Row, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, table.Row{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Root,
			run.Scanned,
			run.Duplicates,
			run.Organized,
			run.Errors,
		})
	}
	return rows
}
