package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeClassification()
	c.normalizeTopics()
	c.normalizeExtraction()
	c.normalizeNaming()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := os.LookupEnv(QuarantineEnvVar); ok && strings.TrimSpace(value) != "" {
		c.Paths.QuarantineDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.QuarantineDir) == "" {
		c.Paths.QuarantineDir = defaultQuarantineDir
	}
	if c.Paths.QuarantineDir, err = expandPath(strings.TrimSpace(c.Paths.QuarantineDir)); err != nil {
		return fmt.Errorf("paths.quarantine_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	c.Paths.RunFolderPrefix = strings.TrimSpace(c.Paths.RunFolderPrefix)
	if c.Paths.RunFolderPrefix == "" {
		c.Paths.RunFolderPrefix = defaultRunFolderPrefix
	}
	return nil
}

func (c *Config) normalizeScan() {
	exts := make([]string, 0, len(c.Scan.Extensions))
	seen := make(map[string]struct{}, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" || normalized == "." {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = defaultExtensions()
	}
	c.Scan.Extensions = exts

	prefixes := make([]string, 0, len(c.Scan.ExcludedPrefixes))
	for _, prefix := range c.Scan.ExcludedPrefixes {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			prefixes = append(prefixes, prefix)
		}
	}
	if c.Scan.ExcludedPrefixes == nil {
		prefixes = defaultExcludedPrefixes()
	}
	c.Scan.ExcludedPrefixes = prefixes
}

func (c *Config) normalizeClassification() {
	c.Classification.FallbackTopic = strings.TrimSpace(c.Classification.FallbackTopic)
	if c.Classification.FallbackTopic == "" {
		c.Classification.FallbackTopic = defaultFallbackTopic
	}
	c.Classification.FallbackFolder = strings.TrimSpace(c.Classification.FallbackFolder)
	if c.Classification.FallbackFolder == "" {
		c.Classification.FallbackFolder = defaultFallbackFolder
	}
}

func (c *Config) normalizeTopics() {
	if c.Topics == nil {
		c.Topics = defaultTopics()
	}
	for i := range c.Topics {
		topic := &c.Topics[i]
		topic.Key = strings.TrimSpace(topic.Key)
		topic.Folder = strings.TrimSpace(topic.Folder)
		if topic.Folder == "" {
			topic.Folder = topic.Key
		}
		keywords := make([]string, 0, len(topic.Keywords))
		for _, kw := range topic.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		topic.Keywords = keywords
	}
}

func (c *Config) normalizeExtraction() {
	if c.Extraction.SampleLimit <= 0 {
		c.Extraction.SampleLimit = defaultSampleLimit
	}
	if c.Extraction.PDFMaxPages <= 0 {
		c.Extraction.PDFMaxPages = defaultPDFMaxPages
	}
	if c.Extraction.DOCXMaxParagraphs <= 0 {
		c.Extraction.DOCXMaxParagraphs = defaultDOCXMaxParagraphs
	}
	if c.Extraction.XLSXMaxRows <= 0 {
		c.Extraction.XLSXMaxRows = defaultXLSXMaxRows
	}
	if c.Extraction.PPTXMaxSlides <= 0 {
		c.Extraction.PPTXMaxSlides = defaultPPTXMaxSlides
	}
}

func (c *Config) normalizeNaming() {
	c.Naming.DateSource = strings.ToLower(strings.TrimSpace(c.Naming.DateSource))
	if c.Naming.DateSource == "" {
		c.Naming.DateSource = defaultDateSource
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
