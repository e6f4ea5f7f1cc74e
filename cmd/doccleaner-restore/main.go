// Command doccleaner-restore moves the files listed in a DocCleaner manifest
// back to their original locations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"doccleaner/internal/logging"
	"doccleaner/internal/restore"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var dryRun bool
	var logLevel string

	cmd := &cobra.Command{
		Use:           "doccleaner-restore <manifest>",
		Short:         "Restore files moved by DocCleaner using doccleaner_result_map.json",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Options{
				Level:  logLevel,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			restorer := restore.New(afero.NewOsFs(), cmd.OutOrStdout(), logger)
			_, err = restorer.Restore(cmd.Context(), args[0], dryRun)
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate restoration")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	return cmd
}
