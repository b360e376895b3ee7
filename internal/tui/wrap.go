package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Line is one wrapped display line. Start is the code-point offset of its
// first character in the wrapped text.
type Line struct {
	Text  string
	Start int
}

// WrapText wraps text to fit within maxWidth terminal cells, breaking on
// spaces when possible and between wide (CJK) characters otherwise.
// Height truncation is handled by the caller during rendering, not here.
func WrapText(text string, maxWidth int) []string {
	lines := WrapLines(text, maxWidth)
	result := make([]string, len(lines))
	for i, l := range lines {
		result[i] = l.Text
	}
	return result
}

// WrapLines is WrapText that also reports where each line starts.
func WrapLines(text string, maxWidth int) []Line {
	if maxWidth <= 0 {
		return []Line{}
	}

	var result []Line
	offset := 0
	for _, para := range strings.Split(text, "\n") {
		result = append(result, wrapParagraph(para, offset, maxWidth)...)
		offset += utf8.RuneCountInString(para) + 1
	}
	return result
}

// wrapParagraph wraps a single line of text that contains no newline.
func wrapParagraph(para string, offset, maxWidth int) []Line {
	runes := []rune(strings.TrimRight(para, "\r"))
	if len(runes) == 0 {
		return []Line{{Start: offset}}
	}

	var result []Line
	lineStart, width := 0, 0
	// cut and resume mark the last place the line may be broken: the text
	// ends before cut and the next line begins at resume.
	cut, resume := -1, -1

	for i := 0; i < len(runes); {
		r := runes[i]
		w := runewidth.RuneWidth(r)

		if width+w > maxWidth && i > lineStart {
			end, next := i, i
			switch {
			case unicode.IsSpace(r):
				next = i + 1
			case w > 1 || runewidth.RuneWidth(runes[i-1]) > 1:
				// break right here, between wide characters
			case cut > lineStart:
				end, next = cut, resume
			}
			result = append(result, Line{Text: string(runes[lineStart:end]), Start: offset + lineStart})
			lineStart = next
			i = max(i, lineStart)
			width = runewidth.StringWidth(string(runes[lineStart:i]))
			cut, resume = -1, -1
			continue
		}

		switch {
		case unicode.IsSpace(r):
			cut, resume = i, i+1
		case w > 1:
			if i > lineStart {
				cut, resume = i, i
			}
		case i > 0 && runewidth.RuneWidth(runes[i-1]) > 1:
			cut, resume = i, i
		}

		width += w
		i++
	}

	if lineStart < len(runes) {
		result = append(result, Line{Text: string(runes[lineStart:]), Start: offset + lineStart})
	}
	return result
}

// truncateWidth shortens s to at most width cells, adding "..." when cut.
func truncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "...")
}
