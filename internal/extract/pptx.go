package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

type slideShape struct {
	title bool
	text  string
}

func readPPTX(ctx context.Context, doc document, size int64, limits Limits) (Metadata, error) {
	pkg, err := zip.NewReader(doc, size)
	if err != nil {
		return Metadata{}, err
	}

	type slidePart struct {
		index int
		file  *zip.File
	}
	var slides []slidePart
	for _, f := range pkg.File {
		m := slidePartPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slidePart{index: idx, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].index < slides[j].index })
	if limits.PPTXMaxSlides > 0 && len(slides) > limits.PPTXMaxSlides {
		slides = slides[:limits.PPTXMaxSlides]
	}

	meta := Metadata{}
	var texts []string
	for n, slide := range slides {
		if err := ctx.Err(); err != nil {
			return Metadata{}, err
		}
		shapes, err := readSlide(slide.file)
		if err != nil {
			return Metadata{}, err
		}
		if n == 0 {
			meta.Title = slideTitle(shapes)
		}
		for _, s := range shapes {
			texts = append(texts, s.text)
		}
	}
	meta.SampleText = joinLines(texts)
	return meta, nil
}

// slideTitle prefers a title placeholder and falls back to the first text shape.
func slideTitle(shapes []slideShape) string {
	for _, s := range shapes {
		if s.title {
			return s.text
		}
	}
	if len(shapes) > 0 {
		return shapes[0].text
	}
	return ""
}

func readSlide(f *zip.File) ([]slideShape, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var shapes []slideShape
	var current *slideShape
	var paras []string
	var para textCollector
	dec := newDecoder(rc)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				current = &slideShape{}
				paras = paras[:0]
			case "ph":
				if current != nil {
					switch attr(t, "type") {
					case "title", "ctrTitle":
						current.title = true
					}
				}
			case "p":
				para.take()
			default:
				para.handle(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if current != nil {
					paras = append(paras, para.take())
				}
			case "sp":
				if current != nil {
					current.text = strings.TrimSpace(strings.Join(paras, "\n"))
					if current.text != "" {
						shapes = append(shapes, *current)
					}
				}
				current = nil
			default:
				para.handle(t)
			}
		default:
			para.handle(tok)
		}
	}
	return shapes, nil
}
