package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var recursive bool
	var dryRun bool

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "doccleaner <folder>",
		Short: "Deduplicate, classify and organize office documents",
		Long: "DocCleaner scans a folder of PDF, DOCX, PPTX and XLSX files, moves exact\n" +
			"duplicates to the quarantine directory, and files every other document under\n" +
			"DocCleaner_Run_<timestamp>/<topic>/<month>/ with a normalized name.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runOrganize(cmd, ctx, args[0], recursive, dryRun)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Scan subfolders too")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would happen without touching any file")

	rootCmd.AddCommand(newRestoreCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
