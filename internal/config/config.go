package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// QuarantineEnvVar overrides paths.quarantine_dir when set.
const QuarantineEnvVar = "DOCCLEANER_QUARANTINE_DIR"

// Paths contains directory configuration.
type Paths struct {
	QuarantineDir   string `toml:"quarantine_dir"`
	StateDir        string `toml:"state_dir"`
	RunFolderPrefix string `toml:"run_folder_prefix"`
}

// Scan controls which files the scanner picks up.
type Scan struct {
	Extensions       []string `toml:"extensions"`
	ExcludedPrefixes []string `toml:"excluded_prefixes"`
}

// Classification holds the fallback topic used when no keyword matches.
type Classification struct {
	FallbackTopic  string `toml:"fallback_topic"`
	FallbackFolder string `toml:"fallback_folder"`
}

// Topic is one classification label with its keywords and output folder.
type Topic struct {
	Key      string   `toml:"key"`
	Folder   string   `toml:"folder"`
	Keywords []string `toml:"keywords"`
}

// Extraction bounds how much of each document the extractor reads.
type Extraction struct {
	SampleLimit       int `toml:"sample_limit"`
	PDFMaxPages       int `toml:"pdf_max_pages"`
	DOCXMaxParagraphs int `toml:"docx_max_paragraphs"`
	XLSXMaxRows       int `toml:"xlsx_max_rows"`
	PPTXMaxSlides     int `toml:"pptx_max_slides"`
}

// Naming selects the reference date used for renaming and month folders.
type Naming struct {
	DateSource string `toml:"date_source"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// History toggles the SQLite run ledger.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Config encapsulates all configuration values for DocCleaner.
//
// Configuration sections by subsystem:
//   - Paths: quarantine, state directory, run folder prefix
//   - Scan: extension allow-list and excluded directory prefixes
//   - Classification: fallback topic and folder
//   - Topics: ordered topic list (order breaks classification ties)
//   - Extraction: per-format read limits
//   - Naming: reference date source
//   - Logging: log format and level
//   - History: run ledger toggle
type Config struct {
	Paths          Paths          `toml:"paths"`
	Scan           Scan           `toml:"scan"`
	Classification Classification `toml:"classification"`
	Topics         []Topic        `toml:"topics"`
	Extraction     Extraction     `toml:"extraction"`
	Naming         Naming         `toml:"naming"`
	Logging        Logging        `toml:"logging"`
	History        History        `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/doccleaner/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// List values in the file replace the defaults instead of merging with them.
		cfg.Topics = nil
		cfg.Scan.Extensions = nil
		cfg.Scan.ExcludedPrefixes = nil

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/doccleaner/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("doccleaner.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// TopicFolder maps a topic key to its output folder. Unknown topics, including
// the fallback, land in the fallback folder.
func (c *Config) TopicFolder(topic string) string {
	for _, t := range c.Topics {
		if t.Key == topic {
			return t.Folder
		}
	}
	return c.Classification.FallbackFolder
}

// TopicFolders returns the topic -> folder mapping including the fallback.
func (c *Config) TopicFolders() map[string]string {
	folders := make(map[string]string, len(c.Topics)+1)
	for _, t := range c.Topics {
		folders[t.Key] = t.Folder
	}
	folders[c.Classification.FallbackTopic] = c.Classification.FallbackFolder
	return folders
}

// SharedKeywords returns keywords listed under more than one topic, mapped to
// the topic keys that list them in configured order. A shared keyword scores
// for every such topic, so the earlier topic wins when nothing else differs.
func (c *Config) SharedKeywords() map[string][]string {
	owners := map[string][]string{}
	for _, t := range c.Topics {
		seen := map[string]bool{}
		for _, kw := range t.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			owners[kw] = append(owners[kw], t.Key)
		}
	}
	for kw, keys := range owners {
		if len(keys) < 2 {
			delete(owners, kw)
		}
	}
	return owners
}

// AllowsExtension reports whether ext (with leading dot, any case) is scanned.
func (c *Config) AllowsExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range c.Scan.Extensions {
		if allowed == ext {
			return true
		}
	}
	return false
}

// HistoryPath returns the SQLite run ledger location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LockDir returns the directory holding per-root run locks.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, "locks")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ErrSampleExists is returned by WriteSample when the target already exists
// and overwrite was not requested.
var ErrSampleExists = errors.New("config file already exists")

// WriteSample writes the commented sample configuration. An empty path selects
// DefaultConfigPath. The resolved target is returned.
func WriteSample(path string, overwrite bool) (string, error) {
	var target string
	var err error
	if trimmed := strings.TrimSpace(path); trimmed == "" {
		target, err = DefaultConfigPath()
	} else {
		target, err = expandPath(trimmed)
	}
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return target, fmt.Errorf("%w at %s (use --overwrite to replace it)", ErrSampleExists, target)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return target, fmt.Errorf("check config path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return target, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(target, []byte(sampleConfig), 0o644); err != nil {
		return target, fmt.Errorf("write sample config: %w", err)
	}
	return target, nil
}
