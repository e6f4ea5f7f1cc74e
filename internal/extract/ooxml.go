package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// maxPartSize caps how much of a single XML part is decoded.
const maxPartSize = 8 << 20

func openPart(pkg *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range pkg.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("package part %s not found", name)
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// textCollector accumulates the character data of one OOXML paragraph.
type textCollector struct {
	inText bool
	buf    strings.Builder
}

func (c *textCollector) handle(tok xml.Token) {
	switch t := tok.(type) {
	case xml.StartElement:
		switch t.Name.Local {
		case "t":
			c.inText = true
		case "tab":
			c.buf.WriteByte('\t')
		case "br", "cr":
			c.buf.WriteByte('\n')
		}
	case xml.EndElement:
		if t.Name.Local == "t" {
			c.inText = false
		}
	case xml.CharData:
		if c.inText {
			c.buf.Write(t)
		}
	}
}

func (c *textCollector) take() string {
	text := strings.TrimSpace(c.buf.String())
	c.buf.Reset()
	c.inText = false
	return text
}

func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(io.LimitReader(r, maxPartSize))
	dec.Strict = false
	return dec
}
