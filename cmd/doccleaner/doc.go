// Package main hosts the DocCleaner CLI entrypoint and command graph.
//
// The root command organizes a folder: it runs the preflight checks, executes
// one pipeline pass and prints a summary table. Subcommands restore a previous
// run from its manifest or history ID, list recorded runs, report directory
// readiness and scaffold or validate the configuration file.
//
// Keep this package lean: behaviour lives in internal packages and is only
// surfaced here through flags and output formatting.
package main
