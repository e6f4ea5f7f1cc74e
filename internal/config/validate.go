package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateTopics(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.QuarantineDir) == "" {
		return errors.New("paths.quarantine_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	if !isPlainSegment(c.Paths.RunFolderPrefix) {
		return fmt.Errorf("paths.run_folder_prefix %q must be a plain folder name", c.Paths.RunFolderPrefix)
	}
	return nil
}

func (c *Config) validateScan() error {
	if len(c.Scan.Extensions) == 0 {
		return errors.New("scan.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateTopics() error {
	fallback := c.Classification.FallbackTopic
	if !isPlainSegment(c.Classification.FallbackFolder) {
		return fmt.Errorf("classification.fallback_folder %q must be a plain folder name", c.Classification.FallbackFolder)
	}
	if len(c.Topics) == 0 {
		return errors.New("topics must include at least one topic")
	}
	seen := make(map[string]struct{}, len(c.Topics))
	for i, topic := range c.Topics {
		if topic.Key == "" {
			return fmt.Errorf("topics[%d].key must be set", i)
		}
		if topic.Key == fallback {
			return fmt.Errorf("topics[%d].key %q collides with classification.fallback_topic", i, topic.Key)
		}
		if _, exists := seen[topic.Key]; exists {
			return fmt.Errorf("topics[%d].key %q is declared more than once", i, topic.Key)
		}
		seen[topic.Key] = struct{}{}
		if !isPlainSegment(topic.Folder) {
			return fmt.Errorf("topics[%d].folder %q must be a plain folder name", i, topic.Folder)
		}
		if len(topic.Keywords) == 0 {
			return fmt.Errorf("topics[%d] (%s) must list at least one keyword", i, topic.Key)
		}
	}
	return nil
}

func (c *Config) validateExtraction() error {
	return ensurePositive([]namedValue{
		{"extraction.sample_limit", c.Extraction.SampleLimit},
		{"extraction.pdf_max_pages", c.Extraction.PDFMaxPages},
		{"extraction.docx_max_paragraphs", c.Extraction.DOCXMaxParagraphs},
		{"extraction.xlsx_max_rows", c.Extraction.XLSXMaxRows},
		{"extraction.pptx_max_slides", c.Extraction.PPTXMaxSlides},
	})
}

func (c *Config) validateNaming() error {
	switch c.Naming.DateSource {
	case DateSourceModified, DateSourceCreated:
		return nil
	default:
		return fmt.Errorf("naming.date_source must be %q or %q, got %q", DateSourceModified, DateSourceCreated, c.Naming.DateSource)
	}
}

type namedValue struct {
	name  string
	value int
}

func ensurePositive(values []namedValue) error {
	for _, v := range values {
		if v.value <= 0 {
			return fmt.Errorf("%s must be positive", v.name)
		}
	}
	return nil
}

func isPlainSegment(name string) bool {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
