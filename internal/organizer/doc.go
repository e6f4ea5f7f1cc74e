// Package organizer places processed documents into the run folder.
//
// Each run gets a timestamped folder under the input root. Documents land in
// <run>/<topic folder>/<MonYYYY>/ with collision-safe names; moves that
// cross filesystems fall back to a verified copy. Dry runs compute the same
// destinations without creating directories or moving anything.
package organizer
