package dedup

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"doccleaner/internal/failure"
	"doccleaner/internal/fileutil"
	"doccleaner/internal/logging"
	"doccleaner/internal/scanner"
)

// Result is the detector's verdict for one candidate.
type Result struct {
	Path        string
	Ext         string
	Fingerprint string
	IsDuplicate bool
	// FinalPath is where the file is (or, in a dry run, would be) after detection.
	FinalPath string
	Err       error
}

// Moved reports whether a duplicate left (or in a dry run would leave) its
// original location.
func (r Result) Moved() bool {
	return r.IsDuplicate && r.Err == nil && r.FinalPath != r.Path
}

// Detector groups candidates by (extension, fingerprint).
type Detector struct {
	fs     afero.Fs
	logger *slog.Logger
}

// New constructs a Detector operating on fsys.
func New(fsys afero.Fs, logger *slog.Logger) *Detector {
	return &Detector{fs: fsys, logger: logging.NewComponentLogger(logger, "dedup")}
}

// Detect fingerprints every candidate in order and relocates duplicates into
// quarantineDir. With dryRun set nothing is created or moved; FinalPath then
// holds the name the duplicate would receive given the files that exist now.
func (d *Detector) Detect(ctx context.Context, files []scanner.Candidate, quarantineDir string, dryRun bool) []Result {
	logger := logging.WithContext(ctx, d.logger)
	seen := make(map[string]map[string]string)
	results := make([]Result, 0, len(files))
	quarantineReady := false

	for _, file := range files {
		res := Result{Path: file.Path, Ext: file.Ext, FinalPath: file.Path}

		sum, err := Fingerprint(d.fs, file.Path)
		if err != nil {
			res.Err = err
			logging.WarnWithContext(logger, "fingerprint failed", "fingerprint_failed",
				logging.String(logging.FieldFile, file.Path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "file treated as unique"),
				logging.String(logging.FieldErrorHint, "check that the file is readable"),
			)
			results = append(results, res)
			continue
		}
		res.Fingerprint = sum

		group, ok := seen[file.Ext]
		if !ok {
			group = make(map[string]string)
			seen[file.Ext] = group
		}
		canonical, dup := group[sum]
		if !dup {
			group[sum] = file.Path
			results = append(results, res)
			continue
		}

		res.IsDuplicate = true
		if !dryRun && !quarantineReady {
			if err := d.fs.MkdirAll(quarantineDir, 0o755); err != nil {
				res.Err = failure.Wrap(failure.ErrProcessing, "dedup", "create quarantine", quarantineDir, err)
				d.logMoveFailure(logger, res)
				results = append(results, res)
				continue
			}
			quarantineReady = true
		}

		target, err := fileutil.FreeName(d.fs, quarantineDir, filepath.Base(file.Path))
		if err != nil {
			res.Err = failure.Wrap(failure.ErrProcessing, "dedup", "probe quarantine", quarantineDir, err)
			d.logMoveFailure(logger, res)
			results = append(results, res)
			continue
		}
		if !dryRun {
			err := fileutil.Move(d.fs, file.Path, target)
			if errors.Is(err, fileutil.ErrSourceNotRemoved) {
				logging.WarnWithContext(logger, "duplicate copied but original remains", "source_not_removed",
					logging.String(logging.FieldFile, file.Path),
					logging.Error(err),
					logging.String(logging.FieldImpact, "duplicate exists in both locations"),
					logging.String(logging.FieldErrorHint, "delete the original manually"),
				)
				err = nil
			}
			if err != nil {
				res.Err = failure.Wrap(failure.ErrProcessing, "dedup", "move duplicate", file.Path, err)
				d.logMoveFailure(logger, res)
				results = append(results, res)
				continue
			}
		}
		res.FinalPath = target
		logger.Info("duplicate found",
			logging.String(logging.FieldFile, file.Path),
			logging.String("canonical", canonical),
			logging.String("quarantine_path", target),
			logging.Bool("dry_run", dryRun),
		)
		results = append(results, res)
	}
	return results
}

func (d *Detector) logMoveFailure(logger *slog.Logger, res Result) {
	logging.WarnWithContext(logger, "duplicate could not be quarantined", "quarantine_failed",
		logging.String(logging.FieldFile, res.Path),
		logging.Error(res.Err),
		logging.String(logging.FieldImpact, "duplicate left in place"),
		logging.String(logging.FieldErrorHint, "check permissions on the quarantine directory"),
	)
}
