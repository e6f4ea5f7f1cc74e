package dedup_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"doccleaner/internal/dedup"
	"doccleaner/internal/failure"
	"doccleaner/internal/logging"
	"doccleaner/internal/scanner"
	"doccleaner/internal/testsupport"
)

const quarantine = "/quarantine"

// faultyFs fails Open or Rename for selected paths.
type faultyFs struct {
	afero.Fs
	unreadable map[string]bool
	unmovable  map[string]bool
}

func (f faultyFs) Open(name string) (afero.File, error) {
	if f.unreadable[name] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

func (f faultyFs) Rename(oldname, newname string) error {
	if f.unmovable[oldname] {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrPermission}
	}
	return f.Fs.Rename(oldname, newname)
}

func candidates(paths ...string) []scanner.Candidate {
	out := make([]scanner.Candidate, 0, len(paths))
	for _, p := range paths {
		out = append(out, scanner.Candidate{Path: p, Ext: filepath.Ext(p)})
	}
	return out
}

func TestDetectFirstSeenIsCanonical(t *testing.T) {
	fs := afero.NewMemMapFs()
	testsupport.WriteBytes(t, fs, "/in/a.pdf", []byte("same"))
	testsupport.WriteBytes(t, fs, "/in/b.pdf", []byte("same"))
	testsupport.WriteBytes(t, fs, "/in/c.pdf", []byte("same"))
	testsupport.WriteBytes(t, fs, "/in/d.pdf", []byte("other"))

	results := dedup.New(fs, logging.NewNop()).Detect(context.Background(),
		candidates("/in/a.pdf", "/in/b.pdf", "/in/c.pdf", "/in/d.pdf"), quarantine, false)

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	wantDup := []bool{false, true, true, false}
	for i, res := range results {
		if res.IsDuplicate != wantDup[i] {
			t.Fatalf("result %d (%s) duplicate=%v, want %v", i, res.Path, res.IsDuplicate, wantDup[i])
		}
		if res.Err != nil {
			t.Fatalf("unexpected error for %s: %v", res.Path, res.Err)
		}
	}
	if results[1].FinalPath != filepath.Join(quarantine, "b.pdf") {
		t.Fatalf("unexpected quarantine path %q", results[1].FinalPath)
	}
	testsupport.AssertExists(t, fs, "/in/a.pdf")
	testsupport.AssertMissing(t, fs, "/in/b.pdf")
	testsupport.AssertMissing(t, fs, "/in/c.pdf")
	testsupport.AssertExists(t, fs, filepath.Join(quarantine, "c.pdf"))
	if results[0].Fingerprint != results[1].Fingerprint || results[0].Fingerprint == results[3].Fingerprint {
		t.Fatal("fingerprints do not reflect content equality")
	}
}

func TestDetectNeverComparesAcrossExtensions(t *testing.T) {
	fs := afero.NewMemMapFs()
	testsupport.WriteBytes(t, fs, "/in/a.docx", []byte("bytes"))
	testsupport.WriteBytes(t, fs, "/in/a.xlsx", []byte("bytes"))

	results := dedup.New(fs, nil).Detect(context.Background(), candidates("/in/a.docx", "/in/a.xlsx"), quarantine, false)
	for _, res := range results {
		if res.IsDuplicate {
			t.Fatalf("%s flagged as duplicate across extensions", res.Path)
		}
	}
	testsupport.AssertMissing(t, fs, quarantine)
}

func TestDetectQuarantineCollisionSuffix(t *testing.T) {
	fs := afero.NewMemMapFs()
	testsupport.WriteBytes(t, fs, filepath.Join(quarantine, "report.pdf"), []byte("older"))
	testsupport.WriteBytes(t, fs, "/in/x/report.pdf", []byte("dup"))
	testsupport.WriteBytes(t, fs, "/in/y/report.pdf", []byte("dup"))
	testsupport.WriteBytes(t, fs, "/in/z/report.pdf", []byte("dup"))

	results := dedup.New(fs, nil).Detect(context.Background(),
		candidates("/in/x/report.pdf", "/in/y/report.pdf", "/in/z/report.pdf"), quarantine, false)

	if results[1].FinalPath != filepath.Join(quarantine, "report_1.pdf") {
		t.Fatalf("second copy path = %q", results[1].FinalPath)
	}
	if results[2].FinalPath != filepath.Join(quarantine, "report_2.pdf") {
		t.Fatalf("third copy path = %q", results[2].FinalPath)
	}
	if got := testsupport.ReadString(t, fs, filepath.Join(quarantine, "report.pdf")); got != "older" {
		t.Fatalf("pre-existing quarantine file overwritten: %q", got)
	}
}

func TestDetectDryRunTouchesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	testsupport.WriteBytes(t, fs, "/in/a.pdf", []byte("same"))
	testsupport.WriteBytes(t, fs, "/in/b.pdf", []byte("same"))

	results := dedup.New(fs, nil).Detect(context.Background(), candidates("/in/a.pdf", "/in/b.pdf"), quarantine, true)

	if !results[1].IsDuplicate || results[1].FinalPath != filepath.Join(quarantine, "b.pdf") {
		t.Fatalf("unexpected dry-run result %+v", results[1])
	}
	if !results[1].Moved() {
		t.Fatal("dry-run duplicate should report the would-be move")
	}
	testsupport.AssertExists(t, fs, "/in/b.pdf")
	testsupport.AssertMissing(t, fs, quarantine)
}

func TestDetectUnreadableFileIsUniqueWithReadFailed(t *testing.T) {
	mem := afero.NewMemMapFs()
	testsupport.WriteBytes(t, mem, "/in/a.pdf", []byte("same"))
	testsupport.WriteBytes(t, mem, "/in/b.pdf", []byte("same"))
	fs := faultyFs{Fs: mem, unreadable: map[string]bool{"/in/a.pdf": true}}

	results := dedup.New(fs, nil).Detect(context.Background(), candidates("/in/a.pdf", "/in/b.pdf"), quarantine, false)

	if !errors.Is(results[0].Err, failure.ErrReadFailed) {
		t.Fatalf("expected ReadFailed, got %v", results[0].Err)
	}
	if results[0].IsDuplicate || results[0].Fingerprint != "" {
		t.Fatalf("unreadable file must be a non-duplicate without fingerprint: %+v", results[0])
	}
	if results[1].IsDuplicate {
		t.Fatal("readable copy should become canonical when the first copy is unreadable")
	}
}

func TestDetectMoveFailureKeepsOriginalPath(t *testing.T) {
	mem := afero.NewMemMapFs()
	testsupport.WriteBytes(t, mem, "/in/a.pdf", []byte("same"))
	testsupport.WriteBytes(t, mem, "/in/b.pdf", []byte("same"))
	fs := faultyFs{Fs: mem, unmovable: map[string]bool{"/in/b.pdf": true}}

	results := dedup.New(fs, nil).Detect(context.Background(), candidates("/in/a.pdf", "/in/b.pdf"), quarantine, false)

	res := results[1]
	if !res.IsDuplicate || res.Err == nil {
		t.Fatalf("expected duplicate with error, got %+v", res)
	}
	if res.FinalPath != "/in/b.pdf" || res.Moved() {
		t.Fatalf("failed move must leave final path at original, got %q", res.FinalPath)
	}
	testsupport.AssertExists(t, mem, "/in/b.pdf")
}

func TestFingerprintLargeFileStreams(t *testing.T) {
	fs := afero.NewMemMapFs()
	big := make([]byte, 200*1024)
	for i := range big {
		big[i] = byte(i % 251)
	}
	testsupport.WriteBytes(t, fs, "/big.pdf", big)
	sum, err := dedup.Fingerprint(fs, "/big.pdf")
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if len(sum) != 64 {
		t.Fatalf("unexpected digest length %d", len(sum))
	}
}
