package extract_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"doccleaner/internal/config"
	"doccleaner/internal/extract"
	"doccleaner/internal/failure"
	"doccleaner/internal/logging"
	"doccleaner/internal/testsupport"
)

func newExtractor(fs afero.Fs) *extract.Extractor {
	cfg := config.Default()
	return extract.New(fs, extract.LimitsFromConfig(&cfg), logging.NewNop())
}

func TestExtractDOCXTitleSubtitleAndBody(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := testsupport.DOCX(t,
		testsupport.Paragraph{Style: "Title", Text: "Procedimiento de compras"},
		testsupport.Paragraph{Style: "Subtitle", Text: "Area financiera"},
		testsupport.Paragraph{Text: "Primer paso"},
		testsupport.Paragraph{Text: "   "},
		testsupport.Paragraph{Text: "Segundo paso"},
	)
	testsupport.WriteBytes(t, fs, "/docs/compras.docx", data)

	meta, err := newExtractor(fs).Extract(context.Background(), "/docs/compras.docx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.Title != "Procedimiento de compras" {
		t.Fatalf("title = %q", meta.Title)
	}
	if meta.Subtitle != "Area financiera" {
		t.Fatalf("subtitle = %q", meta.Subtitle)
	}
	if meta.SampleText != "Primer paso\nSegundo paso" {
		t.Fatalf("sample = %q", meta.SampleText)
	}
}

func TestExtractDOCXParagraphLimit(t *testing.T) {
	fs := afero.NewMemMapFs()
	paras := make([]testsupport.Paragraph, 0, 30)
	for i := 0; i < 30; i++ {
		paras = append(paras, testsupport.Paragraph{Text: "linea"})
	}
	testsupport.WriteBytes(t, fs, "/long.docx", testsupport.DOCX(t, paras...))

	cfg := config.Default()
	limits := extract.LimitsFromConfig(&cfg)
	limits.DOCXMaxParagraphs = 5
	meta, err := extract.New(fs, limits, nil).Extract(context.Background(), "/long.docx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := strings.Count(meta.SampleText, "linea"); got != 5 {
		t.Fatalf("expected 5 paragraphs, got %d", got)
	}
}

func TestExtractPPTXPrefersTitlePlaceholder(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := testsupport.PPTX(t,
		testsupport.Slide{Title: "Acta de reunion", Body: []string{"Asistentes"}},
		testsupport.Slide{Body: []string{"Acuerdos"}},
	)
	testsupport.WriteBytes(t, fs, "/deck.pptx", data)

	meta, err := newExtractor(fs).Extract(context.Background(), "/deck.pptx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.Title != "Acta de reunion" {
		t.Fatalf("title = %q", meta.Title)
	}
	if meta.SampleText != "Acta de reunion\nAsistentes\nAcuerdos" {
		t.Fatalf("sample = %q", meta.SampleText)
	}
}

func TestExtractPPTXSlideLimit(t *testing.T) {
	fs := afero.NewMemMapFs()
	slides := make([]testsupport.Slide, 0, 10)
	for i := 0; i < 10; i++ {
		slides = append(slides, testsupport.Slide{Body: []string{"diapositiva"}})
	}
	testsupport.WriteBytes(t, fs, "/deck.pptx", testsupport.PPTX(t, slides...))

	meta, err := newExtractor(fs).Extract(context.Background(), "/deck.pptx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := strings.Count(meta.SampleText, "diapositiva"); got != 6 {
		t.Fatalf("expected 6 slides read, got %d", got)
	}
	if meta.Title != "diapositiva" {
		t.Fatalf("expected first text shape as title, got %q", meta.Title)
	}
}

func TestExtractXLSXFirstRows(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := testsupport.XLSX(t, [][]string{
		{"Formato", "de", "inventario"},
		{"", "codigo", ""},
	})
	testsupport.WriteBytes(t, fs, "/book.xlsx", data)

	meta, err := newExtractor(fs).Extract(context.Background(), "/book.xlsx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.Title != "" {
		t.Fatalf("spreadsheets have no title, got %q", meta.Title)
	}
	if meta.SampleText != "Formato de inventario\ncodigo" {
		t.Fatalf("sample = %q", meta.SampleText)
	}
}

func TestExtractPDFInfoTitle(t *testing.T) {
	fs := afero.NewMemMapFs()
	testsupport.WriteBytes(t, fs, "/manual.pdf", testsupport.PDF(t, "Manual de usuario", "Capitulo uno"))

	meta, err := newExtractor(fs).Extract(context.Background(), "/manual.pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.Title != "Manual de usuario" {
		t.Fatalf("title = %q", meta.Title)
	}
}

func TestExtractRejectsMismatchedContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	testsupport.WriteBytes(t, fs, "/fake.pdf", testsupport.DOCX(t, testsupport.Paragraph{Text: "x"}))
	testsupport.WriteBytes(t, fs, "/fake.docx", []byte("plain text, not a zip"))
	testsupport.WriteBytes(t, fs, "/empty.xlsx", nil)

	ex := newExtractor(fs)
	for _, path := range []string{"/fake.pdf", "/fake.docx", "/empty.xlsx", "/missing.pptx", "/notes.txt"} {
		meta, err := ex.Extract(context.Background(), path)
		if err == nil {
			t.Fatalf("%s: expected error", path)
		}
		if !errors.Is(err, failure.ErrReadFailed) {
			t.Fatalf("%s: expected ReadFailed marker, got %v", path, err)
		}
		if !meta.IsEmpty() {
			t.Fatalf("%s: expected empty metadata on failure, got %+v", path, meta)
		}
	}
}

func TestExtractTruncatesSampleByRunes(t *testing.T) {
	fs := afero.NewMemMapFs()
	testsupport.WriteBytes(t, fs, "/a.docx", testsupport.DOCX(t, testsupport.Paragraph{Text: strings.Repeat("ñ", 50)}))

	cfg := config.Default()
	limits := extract.LimitsFromConfig(&cfg)
	limits.SampleLimit = 10
	meta, err := extract.New(fs, limits, nil).Extract(context.Background(), "/a.docx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.SampleText != strings.Repeat("ñ", 10) {
		t.Fatalf("sample = %q", meta.SampleText)
	}
}

func TestSupports(t *testing.T) {
	for _, ext := range []string{".pdf", ".DOCX", ".xlsx", ".pptx"} {
		if !extract.Supports(ext) {
			t.Fatalf("expected %s to be supported", ext)
		}
	}
	if extract.Supports(".doc") {
		t.Fatal("legacy .doc should not be supported")
	}
}
