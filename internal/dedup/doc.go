// Package dedup finds exact content duplicates among scanned candidates and
// moves every non-canonical copy into the quarantine directory.
//
// Files are compared only with files of the same extension. Within one
// extension the first file seen with a given SHA-256 fingerprint is canonical
// and stays in place; later files with the same fingerprint are duplicates.
// Results are returned in the input order regardless of the per-extension
// grouping.
//
// Per-file failures never abort detection: an unreadable file is reported as
// a non-duplicate carrying failure.ErrReadFailed, and a failed quarantine move
// leaves the duplicate where it was with the error attached.
package dedup
