// Package scanner enumerates candidate documents under an input folder.
package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"doccleaner/internal/config"
	"doccleaner/internal/failure"
	"doccleaner/internal/logging"
)

// Candidate is a file selected for processing.
type Candidate struct {
	Path string
	Ext  string
}

// Scanner walks a root folder applying the extension allow-list and the
// directory exclusion rules.
type Scanner struct {
	fs               afero.Fs
	cfg              *config.Config
	excludedPrefixes []string
	excludedDirs     map[string]struct{}
	logger           *slog.Logger
}

// New builds a Scanner from cfg. Directories named with an excluded prefix,
// previous run folders, and the quarantine directory are never entered.
func New(fsys afero.Fs, cfg *config.Config, logger *slog.Logger) *Scanner {
	prefixes := append([]string{}, cfg.Scan.ExcludedPrefixes...)
	prefixes = append(prefixes, cfg.Paths.RunFolderPrefix)

	excluded := map[string]struct{}{}
	if q := strings.TrimSpace(cfg.Paths.QuarantineDir); q != "" {
		excluded[filepath.Clean(q)] = struct{}{}
	}
	return &Scanner{
		fs:               fsys,
		cfg:              cfg,
		excludedPrefixes: prefixes,
		excludedDirs:     excluded,
		logger:           logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan returns the candidates under root in lexical walk order. When
// recursive is false only the files directly inside root are considered.
func (s *Scanner) Scan(ctx context.Context, root string, recursive bool) ([]Candidate, error) {
	root = filepath.Clean(root)
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, failure.Wrap(failure.ErrFatal, "scanner", "stat root", root, err)
	}
	if !info.IsDir() {
		return nil, failure.Wrap(failure.ErrFatal, "scanner", "stat root", root+" is not a directory", nil)
	}

	var candidates []Candidate
	walkErr := afero.Walk(s.fs, root, func(path string, info fs.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logging.WarnWithContext(s.logger, "skipping unreadable path", "scan_unreadable",
				logging.String(logging.FieldFile, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "files below this path are not processed"),
				logging.String(logging.FieldErrorHint, "check permissions on the folder"),
			)
			if info != nil && info.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || s.excludedDir(path, info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(info.Name()))
		if !s.cfg.AllowsExtension(ext) {
			return nil
		}
		candidates = append(candidates, Candidate{Path: path, Ext: ext})
		return nil
	})
	if walkErr != nil {
		return nil, failure.Wrap(failure.ErrFatal, "scanner", "walk", root, walkErr)
	}

	s.logger.Info("scan complete",
		logging.String("root", root),
		logging.Bool("recursive", recursive),
		logging.Int("files", len(candidates)),
	)
	return candidates, nil
}

func (s *Scanner) excludedDir(path, name string) bool {
	for _, prefix := range s.excludedPrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	_, skip := s.excludedDirs[filepath.Clean(path)]
	return skip
}
