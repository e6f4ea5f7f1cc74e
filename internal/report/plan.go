package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"doccleaner/internal/config"
)

// PlanEntry lists the documents filed under one topic.
type PlanEntry struct {
	SuggestedRoot string   `json:"suggested_root"`
	Files         []string `json:"files"`
}

// Folders maps topics to their output folder.
type Folders struct {
	ByTopic        map[string]string
	FallbackTopic  string
	FallbackFolder string
}

// FoldersFromConfig builds the topic folder mapping from cfg.
func FoldersFromConfig(cfg *config.Config) Folders {
	return Folders{
		ByTopic:        cfg.TopicFolders(),
		FallbackTopic:  cfg.Classification.FallbackTopic,
		FallbackFolder: cfg.Classification.FallbackFolder,
	}
}

func (f Folders) folder(topic string) string {
	if folder, ok := f.ByTopic[topic]; ok {
		return folder
	}
	return f.FallbackFolder
}

// Plan groups documents by topic, keeping topics in first-seen order.
type Plan struct {
	order   []string
	entries map[string]*PlanEntry
}

// Topics returns the topic keys in first-seen order.
func (p *Plan) Topics() []string {
	return append([]string(nil), p.order...)
}

// Entry returns the entry for topic.
func (p *Plan) Entry(topic string) (PlanEntry, bool) {
	entry, ok := p.entries[topic]
	if !ok {
		return PlanEntry{}, false
	}
	return *entry, true
}

// Len returns the number of topics.
func (p *Plan) Len() int {
	return len(p.order)
}

// BuildPlan aggregates non-duplicate records by topic. Paths are relative to
// outputPath, or absolute when no relative path exists. Records without a
// topic are filed under the fallback topic.
func BuildPlan(records []Record, outputPath string, folders Folders) *Plan {
	plan := &Plan{entries: make(map[string]*PlanEntry)}
	for _, rec := range records {
		if rec.IsDuplicate {
			continue
		}
		topic := rec.TopicName()
		if topic == "" {
			topic = folders.FallbackTopic
		}
		entry, ok := plan.entries[topic]
		if !ok {
			entry = &PlanEntry{SuggestedRoot: folders.folder(topic), Files: []string{}}
			plan.entries[topic] = entry
			plan.order = append(plan.order, topic)
		}
		entry.Files = append(entry.Files, relativeTo(outputPath, rec.CurrentPath))
	}
	return plan
}

func relativeTo(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return rel
}

// MarshalJSON writes the plan as an object keyed by topic in first-seen order.
func (p *Plan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, topic := range p.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(topic); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := enc.Encode(p.entries[topic]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
