// Package failure defines the marker errors DocCleaner components use to
// classify what went wrong with a file or a run.
//
// Components wrap underlying errors with Wrap so the pipeline can decide,
// through errors.Is, whether a failure is per-file (ErrReadFailed,
// ErrProcessing) or run-level (ErrFatal, ErrConfiguration). Per-file failures
// are recorded in the manifest and never abort the batch.
package failure
