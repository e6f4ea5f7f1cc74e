package testsupport

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Paragraph is one DOCX paragraph. Style is the paragraph style id (e.g. "Title").
type Paragraph struct {
	Style string
	Text  string
}

// Slide is one PPTX slide: an optional title placeholder followed by body text boxes.
type Slide struct {
	Title string
	Body  []string
}

const (
	wordNS    = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	presentNS = "http://schemas.openxmlformats.org/presentationml/2006/main"
	drawingNS = "http://schemas.openxmlformats.org/drawingml/2006/main"
)

// DOCX builds a minimal WordprocessingML package containing paragraphs.
func DOCX(t testing.TB, paragraphs ...Paragraph) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p>")
		if p.Style != "" {
			body.WriteString(`<w:pPr><w:pStyle w:val="` + escape(p.Style) + `"/></w:pPr>`)
		}
		body.WriteString(`<w:r><w:t xml:space="preserve">` + escape(p.Text) + "</w:t></w:r></w:p>")
	}
	document := xml.Header + `<w:document xmlns:w="` + wordNS + `"><w:body>` + body.String() + "</w:body></w:document>"

	return zipParts(t, []part{
		{"[Content_Types].xml", contentTypes("word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml")},
		{"_rels/.rels", rootRels("word/document.xml")},
		{"word/document.xml", document},
	})
}

// PPTX builds a minimal PresentationML package with one XML part per slide.
func PPTX(t testing.TB, slides ...Slide) []byte {
	t.Helper()

	parts := []part{
		{"[Content_Types].xml", contentTypes("ppt/presentation.xml", "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml")},
		{"_rels/.rels", rootRels("ppt/presentation.xml")},
		{"ppt/presentation.xml", xml.Header + `<p:presentation xmlns:p="` + presentNS + `"/>`},
	}
	for i, slide := range slides {
		var shapes strings.Builder
		id := 2
		if slide.Title != "" {
			shapes.WriteString(shape(id, `<p:ph type="title"/>`, slide.Title))
			id++
		}
		for _, text := range slide.Body {
			shapes.WriteString(shape(id, "", text))
			id++
		}
		content := xml.Header + `<p:sld xmlns:p="` + presentNS + `" xmlns:a="` + drawingNS + `"><p:cSld><p:spTree>` +
			shapes.String() + "</p:spTree></p:cSld></p:sld>"
		parts = append(parts, part{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), content})
	}
	return zipParts(t, parts)
}

// XLSX builds a workbook whose first sheet holds rows.
func XLSX(t testing.TB, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// PDF builds a single-font PDF with an Info title and one text line per page.
func PDF(t testing.TB, title string, pages ...string) []byte {
	t.Helper()

	if len(pages) == 0 {
		pages = []string{""}
	}
	// Object layout: 1 catalog, 2 pages, 3 font, 4 info, then (page, content) pairs.
	var objects []string
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 5+2*i))
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Title (%s) >>", pdfEscape(title)),
	)
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", pdfEscape(text))
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 6+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefAt := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 4 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefAt)
	return buf.Bytes()
}

type part struct {
	name    string
	content string
}

func zipParts(t testing.TB, parts []part) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			t.Fatalf("zip create %s: %v", p.name, err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			t.Fatalf("zip write %s: %v", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func contentTypes(mainPart, mainType string) string {
	return xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/` + mainPart + `" ContentType="` + mainType + `"/></Types>`
}

func rootRels(mainPart string) string {
	return xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="` + mainPart + `"/>` +
		`</Relationships>`
}

func shape(id int, placeholder, text string) string {
	var paras strings.Builder
	for _, line := range strings.Split(text, "\n") {
		paras.WriteString("<a:p><a:r><a:t>" + escape(line) + "</a:t></a:r></a:p>")
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Shape %d"/><p:cNvSpPr/><p:nvPr>%s</p:nvPr></p:nvSpPr><p:txBody>%s</p:txBody></p:sp>`,
		id, id, placeholder, paras.String())
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func pdfEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(s)
}
