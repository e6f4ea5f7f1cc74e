// Package preflight checks the directories a run depends on before any file
// is touched.
//
// The input folder check is required: a missing, non-directory or
// inaccessible root stops the run before side effects. Quarantine and state
// directory checks are advisory; they may not exist yet, so the nearest
// existing ancestor must be writable. The CLI "status" command renders the
// same results as a table.
package preflight
