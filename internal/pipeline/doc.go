// Package pipeline runs one DocCleaner pass over an input folder.
//
// A run scans the folder, quarantines exact duplicates, then extracts,
// classifies, renames and places every remaining document under a fresh run
// folder before exporting the manifests. Per-file failures are captured on
// that file's record and never stop the batch; only a missing or unusable
// input folder aborts, and it does so before any side effect.
//
// Real runs hold an advisory lock per input folder, tee logs into
// <run>/logs/doccleaner.log and are recorded in the history ledger. Dry runs
// compute the same decisions and touch nothing.
package pipeline
