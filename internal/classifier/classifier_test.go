package classifier_test

import (
	"testing"

	"doccleaner/internal/classifier"
	"doccleaner/internal/config"
	"doccleaner/internal/extract"
)

func defaultClassifier() *classifier.Classifier {
	cfg := config.Default()
	return classifier.New(&cfg)
}

func TestClassify(t *testing.T) {
	c := defaultClassifier()
	tests := []struct {
		name string
		meta extract.Metadata
		want string
	}{
		{"higher score wins", extract.Metadata{SampleText: "formato de procedimiento manual"}, "PROCEDIMIENTO"},
		{"tie goes to earlier topic", extract.Metadata{Title: "Acta", SampleText: "formato"}, "FORMATO"},
		{"no keywords", extract.Metadata{Title: "Informe anual", SampleText: "ventas"}, "GENERIC"},
		{"empty metadata", extract.Metadata{}, "GENERIC"},
		{"case insensitive", extract.Metadata{Title: "MINUTES OF MEETING"}, "ACTA"},
		{"substring is not a word", extract.Metadata{SampleText: "contacta procesos formatos"}, "GENERIC"},
		{"subtitle counts", extract.Metadata{Subtitle: "Diagrama de flujo"}, "PROCESO"},
		{"accented text", extract.Metadata{SampleText: "Reunión de equipo, reunión semanal"}, "GENERIC"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Classify(tc.meta); got != tc.want {
				t.Fatalf("Classify(%+v) = %q, want %q", tc.meta, got, tc.want)
			}
		})
	}
}

func TestClassifyAccentedKeywords(t *testing.T) {
	cfg := config.Default()
	cfg.Topics = []config.Topic{
		{Key: "ACTA", Folder: "ACTAS", Keywords: []string{"reunión"}},
	}
	c := classifier.New(&cfg)
	meta := extract.Metadata{SampleText: "Reunio\u0301n de equipo"}
	if got := c.Classify(meta); got != "ACTA" {
		t.Fatalf("decomposed accent should match precomposed keyword, got %q", got)
	}
}

func TestScoresFollowConfiguredOrder(t *testing.T) {
	c := defaultClassifier()
	scores := c.Scores(extract.Metadata{SampleText: "formato de procedimiento manual"})
	want := []classifier.Score{
		{Topic: "FORMATO", Hits: 1},
		{Topic: "PROCEDIMIENTO", Hits: 2},
		{Topic: "ACTA", Hits: 0},
		{Topic: "PROCESO", Hits: 0},
	}
	if len(scores) != len(want) {
		t.Fatalf("got %d scores, want %d", len(scores), len(want))
	}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("score %d = %+v, want %+v", i, scores[i], want[i])
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := defaultClassifier()
	meta := extract.Metadata{Title: "Plantilla", Subtitle: "proceso", SampleText: "meeting"}
	first := c.Classify(meta)
	for i := 0; i < 20; i++ {
		if got := c.Classify(meta); got != first {
			t.Fatalf("classification changed between calls: %q vs %q", first, got)
		}
	}
}
