// Package restore moves documents back to where a DocCleaner run found them.
//
// The manifest written by a run lists every file's original and current
// location. Restore walks it in order and moves each relocated file back,
// never overwriting an occupied original location. Records are independent:
// a skipped or failed record does not stop the rest.
package restore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"doccleaner/internal/fileutil"
	"doccleaner/internal/logging"
	"doccleaner/internal/report"
)

// Result counts the outcome of a restore.
type Result struct {
	// Restored counts files moved back. Dry runs never restore.
	Restored int
	// Planned counts moves a dry run would have performed.
	Planned int
	// Errors counts records skipped or failed.
	Errors int
}

// Restorer replays manifests in reverse.
type Restorer struct {
	fs     afero.Fs
	out    io.Writer
	logger *slog.Logger
}

// New constructs a Restorer. Status lines are written to out.
func New(fsys afero.Fs, out io.Writer, logger *slog.Logger) *Restorer {
	if out == nil {
		out = io.Discard
	}
	return &Restorer{fs: fsys, out: out, logger: logging.NewComponentLogger(logger, "restore")}
}

// Restore reads manifestPath and moves every relocated file back to its
// original path. Only a missing or unreadable manifest is returned as an
// error; per-record problems are counted in Result.Errors.
func (r *Restorer) Restore(ctx context.Context, manifestPath string, dryRun bool) (Result, error) {
	logger := logging.WithContext(ctx, r.logger)

	exists, err := fileutil.Exists(r.fs, manifestPath)
	if err != nil {
		return Result{}, fmt.Errorf("stat manifest: %w", err)
	}
	if !exists {
		r.printf("Error: Manifest file not found: %s\n", manifestPath)
		return Result{}, fmt.Errorf("manifest file not found: %s", manifestPath)
	}
	records, err := report.LoadManifest(r.fs, manifestPath)
	if err != nil {
		return Result{}, err
	}

	r.printf("Loaded manifest with %d entries.\n", len(records))
	logger.Info("restore started",
		logging.String("manifest", manifestPath),
		logging.Int("entries", len(records)),
		logging.Bool("dry_run", dryRun),
	)

	var result Result
	for _, rec := range records {
		if !rec.Moved() {
			continue
		}
		original, current := rec.OriginalPath, rec.CurrentPath

		currentExists, err := fileutil.Exists(r.fs, current)
		if err != nil || !currentExists {
			r.printf("Warning: Current file not found: %s. Skipping.\n", current)
			logging.WarnWithContext(logger, "restore skipped: current file missing", "restore_missing_current",
				logging.String(logging.FieldFile, current),
				logging.String("original_path", original),
				logging.String(logging.FieldImpact, "file not restored"),
				logging.String(logging.FieldErrorHint, "the file was moved or deleted after the run"),
			)
			result.Errors++
			continue
		}

		originalExists, err := fileutil.Exists(r.fs, original)
		if err != nil || originalExists {
			r.printf("Warning: Original location occupied: %s. Skipping to prevent overwrite.\n", original)
			logging.WarnWithContext(logger, "restore skipped: original location occupied", "restore_occupied",
				logging.String(logging.FieldFile, current),
				logging.String("original_path", original),
				logging.String(logging.FieldImpact, "file not restored"),
				logging.String(logging.FieldErrorHint, "move the file at the original path aside and restore again"),
			)
			result.Errors++
			continue
		}

		if dryRun {
			r.printf("[Dry Run] Restore: %s -> %s\n", current, original)
			result.Planned++
			continue
		}

		if err := r.move(current, original); err != nil {
			r.printf("Error restoring %s: %v\n", current, err)
			logging.WarnWithContext(logger, "restore failed", "restore_failed",
				logging.String(logging.FieldFile, current),
				logging.String("original_path", original),
				logging.Error(err),
				logging.String(logging.FieldImpact, "file not restored"),
				logging.String(logging.FieldErrorHint, "check permissions on the original directory"),
			)
			result.Errors++
			continue
		}
		r.printf("Restored: %s\n", filepath.Base(original))
		logger.Info("file restored",
			logging.String(logging.FieldFile, original),
			logging.String("from", current),
		)
		result.Restored++
	}

	r.printf("%s\n", strings.Repeat("-", 30))
	r.printf("Restore complete. Restored: %d, Errors/Skipped: %d\n", result.Restored, result.Errors)
	logger.Info("restore complete",
		logging.Int("restored", result.Restored),
		logging.Int("planned", result.Planned),
		logging.Int("errors", result.Errors),
	)
	return result, nil
}

func (r *Restorer) move(current, original string) error {
	if err := r.fs.MkdirAll(filepath.Dir(original), 0o755); err != nil {
		return err
	}
	err := fileutil.Move(r.fs, current, original)
	if errors.Is(err, fileutil.ErrSourceNotRemoved) {
		logging.WarnWithContext(r.logger, "file copied back but run copy remains", "source_not_removed",
			logging.String(logging.FieldFile, current),
			logging.Error(err),
			logging.String(logging.FieldImpact, "file exists in both locations"),
			logging.String(logging.FieldErrorHint, "delete the run copy manually"),
		)
		return nil
	}
	return err
}

func (r *Restorer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
