package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"doccleaner/internal/extract"
)

const (
	inputFolderName = "Input folder"
	extractorsName  = "Content extraction"
)

// CheckInputFolder verifies that root exists, is a directory and can be
// listed. Real runs also need write access to create the run folder and move
// files out.
func CheckInputFolder(root string, dryRun bool) Result {
	mode := uint32(unix.R_OK | unix.X_OK)
	if !dryRun {
		mode |= unix.W_OK
	}
	result := checkDirectory(inputFolderName, root, mode)
	result.Required = true
	return result
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK)
}

// CheckCreatable passes when path is a writable directory or, when it does not
// exist yet, when its nearest existing ancestor is writable.
func CheckCreatable(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	_, err := os.Stat(path)
	if err == nil {
		return CheckDirectoryAccess(name, path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	ancestor := filepath.Dir(path)
	for {
		if _, err := os.Stat(ancestor); err == nil {
			break
		}
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			break
		}
		ancestor = parent
	}
	parent := checkDirectory(name, ancestor, unix.W_OK|unix.X_OK)
	if !parent.Passed {
		return parent
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

func checkDirectory(name, path string, mode uint32) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	if mode&unix.W_OK == 0 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckExtractors flags allow-listed extensions that have no content reader.
// Those files are still deduplicated and organized, but always land in the
// fallback topic.
func CheckExtractors(extensions []string) Result {
	var missing []string
	for _, ext := range extensions {
		if !extract.Supports(ext) {
			missing = append(missing, ext)
		}
	}
	if len(missing) > 0 {
		return Result{Name: extractorsName, Detail: fmt.Sprintf("no reader for %s (filed under fallback)", strings.Join(missing, " "))}
	}
	return Result{Name: extractorsName, Passed: true, Detail: strings.Join(extensions, " ")}
}
