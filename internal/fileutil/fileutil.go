package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/afero"
)

// maxCollisionAttempts bounds FreeName's suffix search.
const maxCollisionAttempts = 10000

// ErrSourceNotRemoved reports a cross-device move whose copy succeeded but
// whose source could not be deleted. The destination is complete.
var ErrSourceNotRemoved = errors.New("source not removed after copy")

// Exists reports whether path exists. Errors other than not-exist are returned.
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FreeName returns dir/name when nothing exists there, otherwise the first
// dir/<stem>_<n><ext> (n = 1, 2, ...) that is free. Only existing files are
// probed; nothing is created.
func FreeName(fsys afero.Fs, dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	exists, err := Exists(fsys, candidate)
	if err != nil {
		return "", err
	}
	if !exists {
		return candidate, nil
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; counter <= maxCollisionAttempts; counter++ {
		candidate = filepath.Join(dir, stem+"_"+strconv.Itoa(counter)+ext)
		exists, err = Exists(fsys, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted filename slots for %s in %s", name, dir)
}

// Move renames src to dst. When the rename crosses filesystems the file is
// copied with CopyFileVerified and the source removed; if only the removal
// fails the returned error wraps ErrSourceNotRemoved.
func Move(fsys afero.Fs, src, dst string) error {
	err := fsys.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := CopyFileVerified(fsys, src, dst); err != nil {
		return fmt.Errorf("cross-device copy: %w", err)
	}
	if err := fsys.Remove(src); err != nil {
		return fmt.Errorf("%w: %w", ErrSourceNotRemoved, err)
	}
	return nil
}

// CopyFileVerified streams src to dst with SHA256 + size integrity verification.
// Removes dst on mismatch. The source mode is preserved.
func CopyFileVerified(fsys afero.Fs, src, dst string) error {
	srcInfo, err := fsys.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		_ = fsys.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = fsys.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = fsys.Remove(dst)
		return errors.New("copy hash mismatch: file corrupted during copy")
	}

	return nil
}
