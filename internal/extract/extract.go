package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"doccleaner/internal/config"
	"doccleaner/internal/failure"
	"doccleaner/internal/logging"
)

// Metadata is the text surface handed to the classifier.
type Metadata struct {
	Title      string
	Subtitle   string
	SampleText string
}

// IsEmpty reports whether no text was extracted at all.
func (m Metadata) IsEmpty() bool {
	return strings.TrimSpace(m.Title) == "" && strings.TrimSpace(m.Subtitle) == "" && strings.TrimSpace(m.SampleText) == ""
}

// Limits bounds how much of each document is read.
type Limits struct {
	SampleLimit       int
	PDFMaxPages       int
	DOCXMaxParagraphs int
	XLSXMaxRows       int
	PPTXMaxSlides     int
}

// LimitsFromConfig copies the [extraction] section into Limits.
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		SampleLimit:       cfg.Extraction.SampleLimit,
		PDFMaxPages:       cfg.Extraction.PDFMaxPages,
		DOCXMaxParagraphs: cfg.Extraction.DOCXMaxParagraphs,
		XLSXMaxRows:       cfg.Extraction.XLSXMaxRows,
		PPTXMaxSlides:     cfg.Extraction.PPTXMaxSlides,
	}
}

// Extractor dispatches to a per-format reader based on the file extension.
type Extractor struct {
	fs     afero.Fs
	limits Limits
	logger *slog.Logger
}

// New constructs an Extractor reading through fs.
func New(fs afero.Fs, limits Limits, logger *slog.Logger) *Extractor {
	return &Extractor{
		fs:     fs,
		limits: limits,
		logger: logging.NewComponentLogger(logger, "extract"),
	}
}

type document interface {
	io.Reader
	io.ReaderAt
}

type reader func(ctx context.Context, doc document, size int64, limits Limits) (Metadata, error)

var readers = map[string]reader{
	".pdf":  readPDF,
	".docx": readDOCX,
	".xlsx": readXLSX,
	".pptx": readPPTX,
}

// Supports reports whether ext (lower-case, with dot) has a reader.
func Supports(ext string) bool {
	_, ok := readers[strings.ToLower(ext)]
	return ok
}

// Extract reads metadata from path. On any failure it returns empty Metadata
// and an error marked failure.ErrReadFailed.
func (e *Extractor) Extract(ctx context.Context, path string) (meta Metadata, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	read, ok := readers[ext]
	if !ok {
		return Metadata{}, failure.Wrap(failure.ErrReadFailed, "extract", "dispatch", fmt.Sprintf("no reader for %q", ext), nil)
	}

	file, err := e.fs.Open(path)
	if err != nil {
		return Metadata{}, failure.Wrap(failure.ErrReadFailed, "extract", "open", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Metadata{}, failure.Wrap(failure.ErrReadFailed, "extract", "stat", path, err)
	}
	if err := sniff(file, ext); err != nil {
		return Metadata{}, failure.Wrap(failure.ErrReadFailed, "extract", "sniff", path, err)
	}

	defer func() {
		if r := recover(); r != nil {
			meta = Metadata{}
			err = failure.Wrap(failure.ErrReadFailed, "extract", "parse", path, fmt.Errorf("parser panic: %v", r))
		}
	}()

	meta, err = read(ctx, file, info.Size(), e.limits)
	if err != nil {
		return Metadata{}, failure.Wrap(failure.ErrReadFailed, "extract", "parse", path, err)
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Subtitle = strings.TrimSpace(meta.Subtitle)
	meta.SampleText = truncateRunes(meta.SampleText, e.limits.SampleLimit)

	e.logger.Debug("metadata extracted",
		logging.String(logging.FieldFile, path),
		logging.String("title", meta.Title),
		logging.Int("sample_chars", utf8.RuneCountInString(meta.SampleText)),
	)
	return meta, nil
}

// sniff checks the file's magic number against the extension family.
func sniff(r io.ReaderAt, ext string) error {
	head := make([]byte, 261)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read header: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("empty file")
	}
	kind, err := filetype.Match(head[:n])
	if err != nil {
		return fmt.Errorf("match header: %w", err)
	}
	if kind == filetype.Unknown {
		return fmt.Errorf("unrecognized content for %s", ext)
	}
	switch ext {
	case ".pdf":
		if kind.Extension != "pdf" {
			return fmt.Errorf("content is %s, not pdf", kind.Extension)
		}
	default:
		switch kind.Extension {
		case "zip", "docx", "xlsx", "pptx":
		default:
			return fmt.Errorf("content is %s, not an OOXML package", kind.Extension)
		}
	}
	return nil
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for idx := range s {
		if count == limit {
			return s[:idx]
		}
		count++
	}
	return s
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
