// Package history keeps a SQLite ledger of completed runs.
//
// Each real run is recorded with its input root, run folder, manifest path
// and counts, keyed by the run's UUID. The CLI lists recent runs and resolves
// a run ID to its manifest for restore. Dry runs are never recorded.
//
// Schema changes bump schemaVersion in schema.go; an older database must be
// deleted to adopt the new schema.
package history
