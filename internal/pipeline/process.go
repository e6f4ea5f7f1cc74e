package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/spf13/afero"

	"doccleaner/internal/classifier"
	"doccleaner/internal/config"
	"doccleaner/internal/dedup"
	"doccleaner/internal/extract"
	"doccleaner/internal/failure"
	"doccleaner/internal/logging"
	"doccleaner/internal/organizer"
	"doccleaner/internal/renamer"
	"doccleaner/internal/report"
)

// processor turns one detector result into its manifest record.
type processor struct {
	fs         afero.Fs
	cfg        *config.Config
	logger     *slog.Logger
	extractor  *extract.Extractor
	classifier *classifier.Classifier
	organizer  *organizer.Organizer
	outputDir  string
	dryRun     bool
}

func (p *processor) process(ctx context.Context, res dedup.Result, times fileTimes) report.Record {
	logger := logging.WithContext(ctx, p.logger)
	rec := report.Record{
		OriginalPath: res.Path,
		IsDuplicate:  res.IsDuplicate,
		CurrentPath:  res.FinalPath,
		Fingerprint:  res.Fingerprint,
	}
	if times.ok {
		rec.CreatedAt = report.FormatTime(times.created)
		rec.ModifiedAt = report.FormatTime(times.modified)
	}
	if res.Err != nil {
		rec.Error = failure.RecordMessage(res.Err)
	}
	if res.IsDuplicate {
		return rec
	}

	logger.Info("processing", logging.String(logging.FieldFile, filepath.Base(res.Path)))

	meta, err := p.extractor.Extract(ctx, res.Path)
	switch {
	case err != nil:
		logging.WarnWithContext(logger, "content extraction failed", "extract_failed",
			logging.String(logging.FieldFile, res.Path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "classified from empty metadata"),
			logging.String(logging.FieldErrorHint, "check that the document opens in an office suite"),
		)
	case meta.IsEmpty():
		logging.WarnWithContext(logger, "document has no extractable text", "extract_empty",
			logging.String(logging.FieldFile, res.Path),
			logging.String(logging.FieldImpact, "filed under "+p.cfg.Classification.FallbackFolder),
			logging.String(logging.FieldErrorHint, "scanned or image-only documents need OCR before they can be classified"),
		)
	}

	topic := p.classifier.Classify(meta)
	switch {
	case topic != p.classifier.Fallback():
		logger.Debug("classified",
			logging.String(logging.FieldFile, res.Path),
			logging.String("topic", topic),
			logging.Any("scores", p.classifier.Scores(meta)),
		)
	case err == nil && !meta.IsEmpty():
		logging.WarnWithContext(logger, "no topic keywords matched", "classified_fallback",
			logging.String(logging.FieldFile, res.Path),
			logging.String("topic", topic),
			logging.String("title", meta.Title),
			logging.String("subtitle", meta.Subtitle),
			logging.Int("sample_chars", utf8.RuneCountInString(meta.SampleText)),
			logging.String(logging.FieldImpact, "filed under "+p.cfg.Classification.FallbackFolder),
			logging.String(logging.FieldErrorHint, "add keywords for this kind of document to the topics config"),
		)
	}
	rec.Topic = &topic

	refDate := p.referenceDate(times)
	name := renamer.NewName(res.Path, topic, refDate)
	dir := p.organizer.DestinationDir(p.outputDir, topic, refDate)

	final, err := p.organizer.Place(res.Path, dir, name, p.dryRun)
	if err != nil {
		logging.ErrorWithContext(logger, "document could not be organized", "organize_failed",
			logging.String(logging.FieldFile, res.Path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "document left in place"),
			logging.String(logging.FieldErrorHint, "check permissions on the run folder"),
		)
		rec.Error = failure.RecordMessage(err)
		rec.CurrentPath = res.Path
		return rec
	}
	rec.CurrentPath = final
	logger.Info("organized",
		logging.String(logging.FieldFile, res.Path),
		logging.String("destination", final),
		logging.String("topic", topic),
		logging.Bool("dry_run", p.dryRun),
	)
	return rec
}

// referenceDate picks the naming date per naming.date_source.
func (p *processor) referenceDate(times fileTimes) time.Time {
	if !times.ok {
		return time.Now()
	}
	if p.cfg.Naming.DateSource == config.DateSourceCreated {
		return times.created
	}
	return times.modified
}
