package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"doccleaner/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the topic and path configuration",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration with the default topics",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.WriteSample(targetPath, overwrite)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Topics are scored in file order; edit [[topics]] to match your documents before the first run.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

// newConfigValidateCommand loads the configuration and reports how topics
// will classify: the ordered topic table plus keywords that score for more
// than one topic.
func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report topic overlaps",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			con := newConsole(cmd.OutOrStdout())
			if ctx.configExists {
				fmt.Fprintf(con.out, "Config path: %s\n", ctx.configPath)
			} else {
				fmt.Fprintf(con.out, "Config path: %s (not found, defaults used)\n", ctx.configPath)
			}
			topicsTable(con, cfg)

			shared := cfg.SharedKeywords()
			if len(shared) > 0 {
				keywords := make([]string, 0, len(shared))
				for kw := range shared {
					keywords = append(keywords, kw)
				}
				sort.Strings(keywords)
				rows := make([]table.Row, 0, len(keywords))
				for _, kw := range keywords {
					owners := shared[kw]
					rows = append(rows, table.Row{kw, strings.Join(owners, ", "), owners[0]})
				}
				con.table("Shared keywords", table.Row{"Keyword", "Topics", "Wins ties"}, rows)
			}
			fmt.Fprintf(con.out, "Configuration valid: %d topics, fallback %s -> %s\n",
				len(cfg.Topics), cfg.Classification.FallbackTopic, cfg.Classification.FallbackFolder)
			return nil
		},
	}
}
