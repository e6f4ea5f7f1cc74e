//go:build !linux && !darwin

package fileutil

import (
	"os"
	"time"
)

func createdTime(string, os.FileInfo) time.Time {
	return time.Time{}
}
