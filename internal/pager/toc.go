package pager

import (
	"regexp"
	"strings"
)

// Chapter is a detected section heading and the span of text it covers.
type Chapter struct {
	Title string
	Start int
	End   int
}

var chapterPattern = regexp.MustCompile(
	`^(第[0-9零〇一二三四五六七八九十百千两]+[章回节卷]|(?i:chapter\s+([0-9]+|[a-z]+)\b|part\s+([0-9]+|[ivxlcdm]+)\b))`,
)

// maxHeadingLen bounds how long a heading line may be, so body paragraphs
// that happen to start with "Chapter 3" are not taken for headings.
const maxHeadingLen = 60

// DetectChapters scans doc line by line for chapter headings. Offsets are
// code points. The last chapter ends at the end of the document.
func DetectChapters(doc Document) []Chapter {
	var chapters []Chapter
	offset := 0
	for _, line := range strings.SplitAfter(string(doc.runes), "\n") {
		start := offset
		offset += len([]rune(line))

		title := strings.TrimSpace(line)
		if title == "" || len([]rune(title)) > maxHeadingLen {
			continue
		}
		if !chapterPattern.MatchString(title) {
			continue
		}
		if n := len(chapters); n > 0 {
			chapters[n-1].End = start
		}
		chapters = append(chapters, Chapter{Title: title, Start: start})
	}
	if n := len(chapters); n > 0 {
		chapters[n-1].End = doc.Len()
	}
	return chapters
}

// ChapterAt returns the index of the chapter containing location, or -1.
func ChapterAt(chapters []Chapter, location int) int {
	for i := len(chapters) - 1; i >= 0; i-- {
		if location >= chapters[i].Start {
			return i
		}
	}
	return -1
}
