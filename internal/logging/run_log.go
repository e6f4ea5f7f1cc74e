package logging

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// RunLogName is the file name of the per-run log inside <run>/logs.
const RunLogName = "doccleaner.log"

// OpenRunLog creates <runDir>/logs/doccleaner.log and returns a JSON handler
// writing to it. The caller must close the returned closer when the run ends.
func OpenRunLog(fs afero.Fs, runDir string, level slog.Level) (slog.Handler, io.Closer, error) {
	dir := filepath.Join(runDir, "logs")
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	path := RunLogPath(runDir)
	file, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open run log %s: %w", path, err)
	}
	return newJSONHandler(file, level, false), file, nil
}

// RunLogPath returns the run log location inside runDir.
func RunLogPath(runDir string) string {
	return filepath.Join(runDir, "logs", RunLogName)
}

// TailRunLog returns the last limit lines of the run log in runDir. A limit
// of zero or less returns every line.
func TailRunLog(fs afero.Fs, runDir string, limit int) ([]string, error) {
	path := RunLogPath(runDir)
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if limit <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read run log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, limit)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read run log: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
