package fileutil

import (
	"os"
	"time"
)

// FileTimes returns the creation and modification times of the file at path,
// described by info. Platforms (and filesystems) without a creation time
// report the modification time for both.
func FileTimes(path string, info os.FileInfo) (created, modified time.Time) {
	modified = info.ModTime()
	created = createdTime(path, info)
	if created.IsZero() {
		created = modified
	}
	return created, modified
}
