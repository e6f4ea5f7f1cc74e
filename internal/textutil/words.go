package textutil

import (
	"strings"
	"unicode/utf8"
)

// CountWholeWord counts non-overlapping occurrences of word in text where the
// match is not preceded or followed by a word character. Both arguments are
// compared as given; callers fold them first.
func CountWholeWord(text, word string) int {
	if word == "" || len(word) > len(text) {
		return 0
	}
	count := 0
	offset := 0
	for offset <= len(text)-len(word) {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			break
		}
		start := offset + idx
		end := start + len(word)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
			offset = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return count
}

func boundaryBefore(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return !IsWordRune(r)
}

func boundaryAfter(text string, pos int) bool {
	if pos >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return !IsWordRune(r)
}
