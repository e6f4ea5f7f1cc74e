package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"doccleaner/internal/config"
	"doccleaner/internal/history"
	"doccleaner/internal/restore"
)

func newRestoreCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var runID string

	cmd := &cobra.Command{
		Use:   "restore [manifest]",
		Short: "Move files from a previous run back to their original locations",
		Long: "Restore reads doccleaner_result_map.json from a run folder (or looks the run up\n" +
			"in the history ledger with --run) and moves every relocated file back. Files whose\n" +
			"original location is occupied are skipped, never overwritten.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest := ""
			if len(args) == 1 {
				manifest = strings.TrimSpace(args[0])
			}
			runID = strings.TrimSpace(runID)
			switch {
			case manifest != "" && runID != "":
				return errors.New("pass either a manifest path or --run, not both")
			case manifest == "" && runID == "":
				return errors.New("a manifest path or --run is required")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if runID != "" {
				manifest, err = manifestForRun(cmd, cfg, runID)
				if err != nil {
					return err
				}
			}

			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			restorer := restore.New(afero.NewOsFs(), cmd.OutOrStdout(), logger)
			_, err = restorer.Restore(cmd.Context(), manifest, dryRun)
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the moves without performing them")
	cmd.Flags().StringVar(&runID, "run", "", "Restore the run with this history ID (a unique prefix is enough)")
	return cmd
}

func manifestForRun(cmd *cobra.Command, cfg *config.Config, runID string) (string, error) {
	store, err := openHistory(cmd, cfg)
	if err != nil {
		return "", err
	}
	defer store.Close()

	run, err := store.Get(cmd.Context(), runID)
	if err != nil {
		return "", err
	}
	if run.ManifestPath == "" {
		return "", fmt.Errorf("run %s has no manifest", run.ID)
	}
	return run.ManifestPath, nil
}

// openHistory opens the ledger without creating it.
func openHistory(cmd *cobra.Command, cfg *config.Config) (*history.Store, error) {
	path := cfg.HistoryPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no run history at %s", path)
		}
		return nil, fmt.Errorf("check run history: %w", err)
	}
	return history.Open(cmd.Context(), path)
}
