package preflight

import (
	"fmt"

	"doccleaner/internal/config"
	"doccleaner/internal/failure"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Required bool
	Detail   string
}

// RunAll executes the checks for a run over root. Dry runs only need read
// access to the input folder.
func RunAll(cfg *config.Config, root string, dryRun bool) []Result {
	results := []Result{CheckInputFolder(root, dryRun)}
	if cfg == nil {
		return results
	}
	return append(results, Environment(cfg)...)
}

// Environment runs the checks that do not depend on an input folder: the
// quarantine and state directories and extraction coverage of the allow-list.
func Environment(cfg *config.Config) []Result {
	results := []Result{CheckCreatable("Quarantine directory", cfg.Paths.QuarantineDir)}
	if cfg.History.Enabled {
		results = append(results, CheckCreatable("State directory", cfg.Paths.StateDir))
	}
	return append(results, CheckExtractors(cfg.Scan.Extensions))
}

// FirstFatal returns an ErrFatal error for the first failed required check.
func FirstFatal(results []Result) error {
	for _, r := range results {
		if r.Required && !r.Passed {
			return failure.Wrap(failure.ErrFatal, "preflight", r.Name, r.Detail, nil)
		}
	}
	return nil
}

// Warnings returns the failed advisory checks.
func Warnings(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Required && !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

func (r Result) String() string {
	status := "ok"
	if !r.Passed {
		status = "failed"
	}
	return fmt.Sprintf("%s: %s (%s)", r.Name, status, r.Detail)
}
