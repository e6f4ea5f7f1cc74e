package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/spf13/afero"

	"doccleaner/internal/failure"
)

// chunkSize is the streaming read size used while hashing.
const chunkSize = 64 * 1024

// Fingerprint returns the lowercase hex SHA-256 digest of the file at path.
// An unreadable file yields an error marked failure.ErrReadFailed, never an
// empty digest.
func Fingerprint(fsys afero.Fs, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", failure.Wrap(failure.ErrReadFailed, "dedup", "open", path, err)
	}
	defer file.Close()

	sum, err := digest(file)
	if err != nil {
		return "", failure.Wrap(failure.ErrReadFailed, "dedup", "read", path, err)
	}
	return sum, nil
}

// digest hashes r in chunkSize reads. r is wrapped so io.CopyBuffer cannot
// hand the copy to an io.WriterTo (*os.File has one) and bypass the buffer.
func digest(r io.Reader) (string, error) {
	hasher := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(hasher, struct{ io.Reader }{r}, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
