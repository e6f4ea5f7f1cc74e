package report

import "time"

// TimestampLayout renders created_at and modified_at.
const TimestampLayout = time.RFC3339

// Record is the manifest entry for one scanned file.
type Record struct {
	OriginalPath string  `json:"original_path"`
	CreatedAt    string  `json:"created_at"`
	ModifiedAt   string  `json:"modified_at"`
	IsDuplicate  bool    `json:"is_duplicate"`
	Topic        *string `json:"topic"`
	CurrentPath  string  `json:"current_path"`
	Error        string  `json:"error,omitempty"`
	Fingerprint  string  `json:"fingerprint,omitempty"`
}

// FormatTime renders t for a Record.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

// TopicName returns the record topic or "" when unset.
func (r Record) TopicName() string {
	if r.Topic == nil {
		return ""
	}
	return *r.Topic
}

// Moved reports whether the file left its original location.
func (r Record) Moved() bool {
	return r.OriginalPath != "" && r.CurrentPath != "" && r.OriginalPath != r.CurrentPath
}
