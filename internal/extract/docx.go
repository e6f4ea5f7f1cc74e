package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

func readDOCX(ctx context.Context, doc document, size int64, limits Limits) (Metadata, error) {
	pkg, err := zip.NewReader(doc, size)
	if err != nil {
		return Metadata{}, err
	}
	part, err := openPart(pkg, "word/document.xml")
	if err != nil {
		return Metadata{}, err
	}
	defer part.Close()

	meta := Metadata{}
	var body []string
	var style string
	var para textCollector
	dec := newDecoder(part)
	for {
		if limits.DOCXMaxParagraphs > 0 && len(body) >= limits.DOCXMaxParagraphs {
			break
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Metadata{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				style = ""
				para.take()
			case "pStyle":
				style = strings.ToLower(attr(t, "val"))
			default:
				para.handle(t)
			}
		case xml.EndElement:
			if t.Name.Local != "p" {
				para.handle(t)
				continue
			}
			text := para.take()
			if text == "" {
				continue
			}
			switch {
			case strings.Contains(style, "subtitle"):
				if meta.Subtitle == "" {
					meta.Subtitle = text
					continue
				}
			case strings.Contains(style, "title"):
				if meta.Title == "" {
					meta.Title = text
					continue
				}
			}
			body = append(body, text)
			if err := ctx.Err(); err != nil {
				return Metadata{}, err
			}
		default:
			para.handle(tok)
		}
	}
	meta.SampleText = joinLines(body)
	return meta, nil
}
