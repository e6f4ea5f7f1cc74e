// Package renamer builds the normalized target file name
// "<YYYY-MM-DD>_<TOPIC>_<base>[_v<N>]<ext>".
package renamer

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"doccleaner/internal/textutil"
)

// DateLayout renders the reference date prefix.
const DateLayout = "2006-01-02"

// versionPattern matches a trailing version marker such as " v2", "_ver 3",
// "-version2.0" or ".versión 12.5".
var versionPattern = regexp.MustCompile(`(?i)[\s_.-]?(?:v|ver|version|versión)[.\s]?(\d+(?:\.\d+)?)$`)

// ExtractVersion splits a trailing version marker off stem. It returns the
// remaining base (trailing separators trimmed) and the normalized suffix
// "_v<number>", or stem unchanged and "" when no marker is present.
func ExtractVersion(stem string) (string, string) {
	stem = textutil.Normalize(stem)
	loc := versionPattern.FindStringSubmatchIndex(stem)
	if loc == nil {
		return stem, ""
	}
	number := stem[loc[2]:loc[3]]
	base := strings.TrimSpace(stem[:loc[0]])
	base = strings.TrimRightFunc(base, isSeparator)
	return base, "_v" + number
}

// Sanitize removes characters other than letters, digits, underscores,
// whitespace, dots and hyphens, collapses whitespace runs, and joins the
// remaining words with hyphens.
func Sanitize(base string) string {
	base = textutil.Normalize(base)
	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		if textutil.IsWordRune(r) || unicode.IsSpace(r) || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// NewName composes the target file name for originalFileName.
func NewName(originalFileName, topic string, referenceDate time.Time) string {
	name := filepath.Base(originalFileName)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	base, version := ExtractVersion(stem)
	return referenceDate.Format(DateLayout) + "_" + topic + "_" + Sanitize(base) + version + ext
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '_' || r == '.' || r == '-'
}
