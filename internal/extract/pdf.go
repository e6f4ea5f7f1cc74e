package extract

import (
	"context"
	"strings"

	"github.com/ledongthuc/pdf"
)

func readPDF(ctx context.Context, doc document, size int64, limits Limits) (Metadata, error) {
	reader, err := pdf.NewReader(doc, size)
	if err != nil {
		return Metadata{}, err
	}

	meta := Metadata{}
	if info := reader.Trailer().Key("Info"); !info.IsNull() {
		meta.Title = info.Key("Title").Text()
	}

	pages := reader.NumPage()
	if limits.PDFMaxPages > 0 && pages > limits.PDFMaxPages {
		pages = limits.PDFMaxPages
	}
	texts := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return Metadata{}, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			texts = append(texts, content)
		}
	}
	meta.SampleText = joinLines(texts)
	return meta, nil
}
