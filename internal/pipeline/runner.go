package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"doccleaner/internal/classifier"
	"doccleaner/internal/config"
	"doccleaner/internal/dedup"
	"doccleaner/internal/extract"
	"doccleaner/internal/failure"
	"doccleaner/internal/fileutil"
	"doccleaner/internal/history"
	"doccleaner/internal/logging"
	"doccleaner/internal/organizer"
	"doccleaner/internal/report"
	"doccleaner/internal/scanner"
)

// Options selects what a run processes.
type Options struct {
	Root      string
	Recursive bool
	DryRun    bool
}

// Summary describes a finished run.
type Summary struct {
	RunID        string
	Root         string
	OutputDir    string
	ManifestPath string
	PlanPath     string
	DryRun       bool
	Scanned      int
	Duplicates   int
	Organized    int
	Errors       int
	StartedAt    time.Time
	FinishedAt   time.Time
	Records      []report.Record
}

// Option customizes a Runner.
type Option func(*Runner)

// WithClock overrides the time source used for the run folder name.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides how run IDs are minted.
func WithIDGenerator(next func() string) Option {
	return func(r *Runner) {
		if next != nil {
			r.newID = next
		}
	}
}

// Runner executes runs against a filesystem.
type Runner struct {
	fs     afero.Fs
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// New constructs a Runner.
func New(fsys afero.Fs, cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{
		fs:     fsys,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes opts.Root. The returned error is non-nil only for failures
// that prevent the run from starting or from writing its manifests; per-file
// problems are reported in Summary.Records.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, failure.Wrap(failure.ErrFatal, "pipeline", "resolve root", opts.Root, err)
	}
	if err := r.checkRoot(root); err != nil {
		return nil, err
	}

	runID := r.newID()
	ctx = logging.WithRunID(ctx, runID)
	summary := &Summary{RunID: runID, Root: root, DryRun: opts.DryRun, StartedAt: r.now()}

	if !opts.DryRun {
		unlock, err := r.acquireLock(root)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	org := organizer.New(r.fs, r.cfg, r.logger)
	outputDir, err := org.CreateRunFolder(root, summary.StartedAt, opts.DryRun)
	if err != nil {
		return nil, err
	}
	summary.OutputDir = outputDir

	logger := r.logger
	if !opts.DryRun {
		handler, closer, err := logging.OpenRunLog(r.fs, outputDir, logging.ParseLevel(r.cfg.Logging.Level))
		if err != nil {
			logging.WarnWithContext(logger, "run log unavailable", "run_log_failed",
				logging.String("run_dir", outputDir),
				logging.Error(err),
				logging.String(logging.FieldImpact, "details only on the console"),
				logging.String(logging.FieldErrorHint, "check write permissions on the input folder"),
			)
		} else {
			defer closeQuietly(closer)
			logger = logging.TeeLogger(logger, handler)
		}
		org = organizer.New(r.fs, r.cfg, logger)
	}

	logging.WithContext(ctx, logger).Info("run started",
		logging.String("root", root),
		logging.String("output_dir", outputDir),
		logging.Bool("recursive", opts.Recursive),
		logging.Bool("dry_run", opts.DryRun),
	)

	scanCtx := logging.WithStage(ctx, "scan")
	candidates, err := scanner.New(r.fs, r.cfg, logger).Scan(scanCtx, root, opts.Recursive)
	if err != nil {
		return nil, err
	}
	summary.Scanned = len(candidates)
	times := r.collectTimes(candidates)

	dedupCtx := logging.WithStage(ctx, "dedup")
	results := dedup.New(r.fs, logger).Detect(dedupCtx, candidates, r.cfg.Paths.QuarantineDir, opts.DryRun)

	proc := &processor{
		fs:         r.fs,
		cfg:        r.cfg,
		logger:     logger,
		extractor:  extract.New(r.fs, extract.LimitsFromConfig(r.cfg), logger),
		classifier: classifier.New(r.cfg),
		organizer:  org,
		outputDir:  outputDir,
		dryRun:     opts.DryRun,
	}
	records := make([]report.Record, 0, len(results))
	for _, res := range results {
		rec := proc.process(logging.WithStage(ctx, "organize"), res, times[res.Path])
		switch {
		case res.IsDuplicate && res.Moved():
			summary.Duplicates++
		case !res.IsDuplicate && rec.Moved():
			summary.Organized++
		}
		if rec.Error != "" {
			summary.Errors++
		}
		records = append(records, rec)
	}
	summary.Records = records

	if !opts.DryRun {
		paths, err := report.Export(r.fs, records, outputDir, report.FoldersFromConfig(r.cfg))
		if err != nil {
			return summary, err
		}
		summary.ManifestPath = paths.Manifest
		summary.PlanPath = paths.Plan
	}
	summary.FinishedAt = r.now()

	if !opts.DryRun && r.cfg.History.Enabled {
		r.recordHistory(ctx, logger, summary)
	}

	logging.WithContext(ctx, logger).Info("run complete",
		logging.Int("scanned", summary.Scanned),
		logging.Int("duplicates", summary.Duplicates),
		logging.Int("organized", summary.Organized),
		logging.Int("errors", summary.Errors),
		logging.String("output_dir", outputDir),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

func (r *Runner) checkRoot(root string) error {
	info, err := r.fs.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return failure.Wrap(failure.ErrFatal, "pipeline", "check root", "folder does not exist: "+root, nil)
		}
		return failure.Wrap(failure.ErrFatal, "pipeline", "check root", root, err)
	}
	if !info.IsDir() {
		return failure.Wrap(failure.ErrFatal, "pipeline", "check root", "not a directory: "+root, nil)
	}
	return nil
}

// acquireLock takes the per-root advisory lock under the state directory.
func (r *Runner) acquireLock(root string) (func(), error) {
	lockDir := r.cfg.LockDir()
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, failure.Wrap(failure.ErrFatal, "pipeline", "create lock directory", lockDir, err)
	}
	lockPath := LockPath(lockDir, root)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, failure.Wrap(failure.ErrFatal, "pipeline", "acquire lock", lockPath, err)
	}
	if !ok {
		return nil, failure.Wrap(failure.ErrFatal, "pipeline", "acquire lock", "another run is already organizing "+root, nil)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.String("lock", lockPath), logging.Error(err))
		}
	}, nil
}

// LockPath returns the lock file guarding root.
func LockPath(lockDir, root string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}

type fileTimes struct {
	created  time.Time
	modified time.Time
	ok       bool
}

func (r *Runner) collectTimes(candidates []scanner.Candidate) map[string]fileTimes {
	times := make(map[string]fileTimes, len(candidates))
	for _, c := range candidates {
		info, err := r.fs.Stat(c.Path)
		if err != nil {
			continue
		}
		created, modified := fileutil.FileTimes(c.Path, info)
		times[c.Path] = fileTimes{created: created, modified: modified, ok: true}
	}
	return times
}

func (r *Runner) recordHistory(ctx context.Context, logger *slog.Logger, summary *Summary) {
	store, err := history.Open(ctx, r.cfg.HistoryPath())
	if err != nil {
		r.warnHistory(logger, err)
		return
	}
	defer store.Close()
	err = store.Record(ctx, history.Run{
		ID:           summary.RunID,
		StartedAt:    summary.StartedAt,
		FinishedAt:   summary.FinishedAt,
		Root:         summary.Root,
		OutputDir:    summary.OutputDir,
		ManifestPath: summary.ManifestPath,
		Scanned:      summary.Scanned,
		Duplicates:   summary.Duplicates,
		Organized:    summary.Organized,
		Errors:       summary.Errors,
	})
	if err != nil {
		r.warnHistory(logger, err)
	}
}

func (r *Runner) warnHistory(logger *slog.Logger, err error) {
	logging.WarnWithContext(logger, "run not recorded in history", "history_failed",
		logging.String("history_path", r.cfg.HistoryPath()),
		logging.Error(err),
		logging.String(logging.FieldImpact, "restore --run cannot find this run; use the manifest path"),
		logging.String(logging.FieldErrorHint, "check the state directory"),
	)
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

func (s *Summary) String() string {
	return fmt.Sprintf("scanned=%d duplicates=%d organized=%d errors=%d output=%s",
		s.Scanned, s.Duplicates, s.Organized, s.Errors, s.OutputDir)
}
