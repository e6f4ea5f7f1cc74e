package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"doccleaner/internal/config"
	"doccleaner/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status [folder]",
		Short: "Show configuration, directory readiness and topics",
		Long: "Show the effective configuration, whether the quarantine and state\n" +
			"directories are usable, and the ordered topic list. With a folder\n" +
			"argument the input folder is checked as for a real run.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			con := newConsole(cmd.OutOrStdout())

			source := ctx.configPath
			if !ctx.configExists {
				source = "defaults (no config file)"
			}
			con.table("Configuration", table.Row{"Setting", "Value"}, settingsRows(cfg, source))

			results := preflight.Environment(cfg)
			if len(args) == 1 {
				results = preflight.RunAll(cfg, args[0], false)
			}
			con.checks("Readiness", results)

			topicsTable(con, cfg)
			fmt.Fprintf(con.out, "Fallback: documents matching no keyword are tagged %s and filed under %s/\n",
				cfg.Classification.FallbackTopic, cfg.Classification.FallbackFolder)
			return nil
		},
	}
}

func settingsRows(cfg *config.Config, source string) []table.Row {
	historyValue := "disabled"
	if cfg.History.Enabled {
		historyValue = cfg.HistoryPath()
	}
	return []table.Row{
		{"Config", source},
		{"Extensions", strings.Join(cfg.Scan.Extensions, " ")},
		{"Quarantine", cfg.Paths.QuarantineDir},
		{"Run folder prefix", cfg.Paths.RunFolderPrefix},
		{"Date source", cfg.Naming.DateSource},
		{"History", historyValue},
	}
}

// topicsTable lists topics in scoring order; ties go to the earlier row.
func topicsTable(con *console, cfg *config.Config) {
	rows := make([]table.Row, 0, len(cfg.Topics))
	for i, topic := range cfg.Topics {
		rows = append(rows, table.Row{i + 1, topic.Key, topic.Folder, strings.Join(topic.Keywords, ", ")})
	}
	con.table("Topics", table.Row{"#", "Topic", "Folder", "Keywords"}, rows, 1)
}
