// Package logging assembles structured slog loggers and formatting helpers used
// across DocCleaner.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the run identifier and stage automatically. A run additionally
// tees every record into a JSON log file inside its run folder (see
// OpenRunLog and TeeLogger). The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
