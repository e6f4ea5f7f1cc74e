// Package classifier assigns a topic to extracted document metadata by
// counting whole-word keyword hits.
//
// Topics are scored in configured order. The fallback topic starts as the
// best candidate with score zero and a topic replaces it only with a strictly
// higher score, so the earliest topic wins any tie.
package classifier

import (
	"strings"

	"doccleaner/internal/config"
	"doccleaner/internal/extract"
	"doccleaner/internal/textutil"
)

type topic struct {
	key      string
	keywords []string
}

// Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	topics   []topic
	fallback string
}

// Score is one topic's keyword hit count.
type Score struct {
	Topic string
	Hits  int
}

// New builds a Classifier from the ordered topic list in cfg.
func New(cfg *config.Config) *Classifier {
	c := &Classifier{fallback: cfg.Classification.FallbackTopic}
	for _, t := range cfg.Topics {
		if t.Key == c.fallback {
			continue
		}
		folded := make([]string, 0, len(t.Keywords))
		for _, kw := range t.Keywords {
			if kw = textutil.Fold(strings.TrimSpace(kw)); kw != "" {
				folded = append(folded, kw)
			}
		}
		c.topics = append(c.topics, topic{key: t.Key, keywords: folded})
	}
	return c
}

// Fallback returns the topic used when nothing matches.
func (c *Classifier) Fallback() string {
	return c.fallback
}

// Classify returns the best-scoring topic key for meta.
func (c *Classifier) Classify(meta extract.Metadata) string {
	best, bestScore := c.fallback, 0
	for _, s := range c.Scores(meta) {
		if s.Hits > bestScore {
			best, bestScore = s.Topic, s.Hits
		}
	}
	return best
}

// Scores returns the per-topic hit counts in configured order.
func (c *Classifier) Scores(meta extract.Metadata) []Score {
	text := textutil.Fold(meta.Title + " " + meta.Subtitle + " " + meta.SampleText)
	scores := make([]Score, 0, len(c.topics))
	for _, t := range c.topics {
		hits := 0
		for _, kw := range t.keywords {
			hits += textutil.CountWholeWord(text, kw)
		}
		scores = append(scores, Score{Topic: t.key, Hits: hits})
	}
	return scores
}
