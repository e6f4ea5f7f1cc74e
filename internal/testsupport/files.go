package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// WriteBytes writes data to path on fsys, creating parent directories.
func WriteBytes(t testing.TB, fsys afero.Fs, path string, data []byte) {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteDated writes data to path on fsys and stamps it with the given modification time.
func WriteDated(t testing.TB, fsys afero.Fs, path string, data []byte, modified time.Time) {
	t.Helper()

	WriteBytes(t, fsys, path, data)
	if err := fsys.Chtimes(path, modified, modified); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

// ReadString returns the contents of path on fsys.
func ReadString(t testing.TB, fsys afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// AssertExists fails the test when path is missing on fsys.
func AssertExists(t testing.TB, fsys afero.Fs, path string) {
	t.Helper()

	if ok, err := afero.Exists(fsys, path); err != nil || !ok {
		t.Fatalf("expected %s to exist (err=%v)", path, err)
	}
}

// AssertMissing fails the test when path exists on fsys.
func AssertMissing(t testing.TB, fsys afero.Fs, path string) {
	t.Helper()

	if ok, err := afero.Exists(fsys, path); err != nil || ok {
		t.Fatalf("expected %s to be absent (err=%v)", path, err)
	}
}
