//go:build linux

package fileutil

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// createdTime asks statx for the birth time. Filesystems that do not record
// one fall back to the inode change time.
func createdTime(path string, info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat == nil {
		return time.Time{}
	}
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME|unix.STATX_INO, &stx)
	if err == nil && stx.Mask&unix.STATX_BTIME != 0 && stx.Ino == stat.Ino {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	return time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec))
}
