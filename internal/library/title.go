package library

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleFromFileName derives a book title from its file name by dropping
// the directory and a .txt extension.
func TitleFromFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = filepath.Base(name)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".txt") {
		name = strings.TrimSuffix(name, ext)
	}
	if name == "." || name == "/" {
		return ""
	}
	return SanitizeTitle(name)
}

// GenerateTitle creates a title from a content sample, using the first
// non-empty line.
func GenerateTitle(sample []byte) string {
	if len(sample) == 0 {
		return "Untitled"
	}

	// The sample may end mid-rune.
	for !utf8.Valid(sample) && len(sample) > 0 {
		sample = sample[:len(sample)-1]
	}

	for _, line := range strings.Split(string(sample), "\n") {
		if cleaned := SanitizeTitle(line); cleaned != "" {
			return cleaned
		}
	}
	return "Untitled"
}

// TruncateTitle ensures title is at most maxLen runes.
// If truncation is needed, appends "..." to indicate truncation.
func TruncateTitle(title string, maxLen int) string {
	title = strings.TrimSpace(title)

	runes := []rune(title)
	if len(runes) <= maxLen {
		return title
	}
	if maxLen < 3 {
		return strings.Repeat(".", max(maxLen, 0))
	}
	return string(runes[:maxLen-3]) + "..."
}

// SanitizeTitle removes control characters and collapses whitespace.
func SanitizeTitle(title string) string {
	title = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '\uFEFF' {
			return ' '
		}
		return r
	}, title)

	return strings.Join(strings.Fields(title), " ")
}

// Snippet returns up to maxLen runes of text with whitespace collapsed.
func Snippet(text string, maxLen int) string {
	return TruncateTitle(SanitizeTitle(text), maxLen)
}
