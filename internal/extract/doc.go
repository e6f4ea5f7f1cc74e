// Package extract reads a bounded amount of text from office documents so the
// classifier has something to score.
//
// Supported formats are PDF (github.com/ledongthuc/pdf), XLSX
// (github.com/xuri/excelize/v2), and DOCX/PPTX, which are read straight from
// their OOXML zip parts. Every file is sniffed with github.com/h2non/filetype
// before parsing so a renamed or truncated file fails fast with
// failure.ErrReadFailed instead of reaching a parser.
//
// Extraction is best effort: callers receive empty Metadata together with the
// error and decide how to proceed. How much is read per format is controlled
// by the [extraction] configuration section.
package extract
