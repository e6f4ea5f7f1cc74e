package scanner_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"doccleaner/internal/config"
	"doccleaner/internal/failure"
	"doccleaner/internal/logging"
	"doccleaner/internal/scanner"
	"doccleaner/internal/testsupport"
)

func seed(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		testsupport.WriteBytes(t, fs, p, []byte(p))
	}
}

func newScanner(fs afero.Fs) *scanner.Scanner {
	cfg := config.Default()
	cfg.Paths.QuarantineDir = "/in/duplicated"
	return scanner.New(fs, &cfg, logging.NewNop())
}

func paths(cands []scanner.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Path)
	}
	return out
}

func TestScanRecursiveAppliesFiltersAndExclusions(t *testing.T) {
	fs := afero.NewMemMapFs()
	seed(t, fs,
		"/in/b.PDF",
		"/in/a.docx",
		"/in/notes.txt",
		"/in/sub/c.xlsx",
		"/in/sub/deeper/d.pptx",
		"/in/.hidden/e.pdf",
		"/in/__pycache__/f.pdf",
		"/in/DocCleaner_Run_2024-01-01_10-00-00/ACTAS/g.pdf",
		"/in/duplicated/h.pdf",
	)

	cands, err := newScanner(fs).Scan(context.Background(), "/in", true)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{
		filepath.Join("/in", "a.docx"),
		filepath.Join("/in", "b.PDF"),
		filepath.Join("/in", "sub", "c.xlsx"),
		filepath.Join("/in", "sub", "deeper", "d.pptx"),
	}
	got := paths(cands)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}
	if cands[1].Ext != ".pdf" {
		t.Fatalf("extension not lower-cased: %q", cands[1].Ext)
	}
}

func TestScanNonRecursiveStaysAtTopLevel(t *testing.T) {
	fs := afero.NewMemMapFs()
	seed(t, fs, "/in/a.pdf", "/in/sub/b.pdf")

	cands, err := newScanner(fs).Scan(context.Background(), "/in", false)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(cands) != 1 || cands[0].Path != filepath.Join("/in", "a.pdf") {
		t.Fatalf("unexpected candidates: %v", paths(cands))
	}
}

func TestScanMissingRootIsFatal(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := newScanner(fs).Scan(context.Background(), "/nope", true)
	if !errors.Is(err, failure.ErrFatal) {
		t.Fatalf("expected fatal error, got %v", err)
	}

	seed(t, fs, "/file.pdf")
	_, err = newScanner(fs).Scan(context.Background(), "/file.pdf", true)
	if !errors.Is(err, failure.ErrFatal) {
		t.Fatalf("expected fatal error for non-directory root, got %v", err)
	}
}

func TestScanHonoursConfiguredExtensions(t *testing.T) {
	fs := afero.NewMemMapFs()
	seed(t, fs, "/in/a.pdf", "/in/b.docx", "/in/c.XLSX")

	cfg := config.Default()
	cfg.Paths.QuarantineDir = "/in/duplicated"
	cfg.Scan.Extensions = []string{".xlsx"}
	cands, err := scanner.New(fs, &cfg, logging.NewNop()).Scan(context.Background(), "/in", false)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(cands) != 1 || cands[0].Path != filepath.Join("/in", "c.XLSX") || cands[0].Ext != ".xlsx" {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
}
