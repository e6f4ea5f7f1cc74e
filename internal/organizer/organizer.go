package organizer

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"doccleaner/internal/config"
	"doccleaner/internal/failure"
	"doccleaner/internal/fileutil"
	"doccleaner/internal/logging"
)

// RunFolderLayout is the timestamp appended to the run folder prefix.
const RunFolderLayout = "2006-01-02_15-04-05"

var monthAbbrev = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// MonthFolder renders date as the month folder name, e.g. "Ene2025".
func MonthFolder(date time.Time) string {
	return fmt.Sprintf("%s%d", monthAbbrev[date.Month()-1], date.Year())
}

// Organizer moves documents into the run folder hierarchy.
type Organizer struct {
	fs     afero.Fs
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs an Organizer operating on fsys.
func New(fsys afero.Fs, cfg *config.Config, logger *slog.Logger) *Organizer {
	return &Organizer{fs: fsys, cfg: cfg, logger: logging.NewComponentLogger(logger, "organizer")}
}

// CreateRunFolder returns <root>/<prefix><timestamp> and creates it unless
// dryRun is set.
func (o *Organizer) CreateRunFolder(root string, at time.Time, dryRun bool) (string, error) {
	runDir := filepath.Join(root, o.cfg.Paths.RunFolderPrefix+at.Format(RunFolderLayout))
	if dryRun {
		return runDir, nil
	}
	if err := o.fs.MkdirAll(runDir, 0o755); err != nil {
		return "", failure.Wrap(failure.ErrFatal, "organizer", "create run folder", runDir, err)
	}
	o.logger.Info("run folder created", logging.String("run_dir", runDir))
	return runDir, nil
}

// DestinationDir returns <outputRoot>/<topic folder>/<MonYYYY>. Topics without
// a configured folder use the fallback folder.
func (o *Organizer) DestinationDir(outputRoot, topic string, date time.Time) string {
	return filepath.Join(outputRoot, o.cfg.TopicFolder(topic), MonthFolder(date))
}

// Place moves src into dir under name, appending _1, _2 ... before the
// extension when the name is taken. It returns the final path. With dryRun set
// nothing is created or moved and the path reflects only files that already
// exist.
func (o *Organizer) Place(src, dir, name string, dryRun bool) (string, error) {
	if !dryRun {
		if err := o.fs.MkdirAll(dir, 0o755); err != nil {
			return "", failure.Wrap(failure.ErrProcessing, "organizer", "create destination", dir, err)
		}
	}
	target, err := fileutil.FreeName(o.fs, dir, name)
	if err != nil {
		return "", failure.Wrap(failure.ErrProcessing, "organizer", "probe destination", dir, err)
	}
	if target != filepath.Join(dir, name) {
		o.logger.Debug("name collision resolved",
			logging.String(logging.FieldFile, src),
			logging.String("requested", name),
			logging.String("resolved", filepath.Base(target)),
		)
	}
	if dryRun {
		return target, nil
	}

	err = fileutil.Move(o.fs, src, target)
	if errors.Is(err, fileutil.ErrSourceNotRemoved) {
		logging.WarnWithContext(o.logger, "document copied but original remains", "source_not_removed",
			logging.String(logging.FieldFile, src),
			logging.String("destination", target),
			logging.Error(err),
			logging.String(logging.FieldImpact, "document exists in both locations"),
			logging.String(logging.FieldErrorHint, "delete the original manually"),
		)
		err = nil
	}
	if err != nil {
		return "", failure.Wrap(failure.ErrProcessing, "organizer", "move document", src, err)
	}
	return target, nil
}
