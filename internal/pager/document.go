package pager

// Document is the immutable decoded text of a book. Offsets and lengths
// are counted in code points so that multi-byte scripts page the same way
// as ASCII.
type Document struct {
	runes []rune
}

// NewDocument decodes text into a Document.
func NewDocument(text string) Document {
	return Document{runes: []rune(text)}
}

// Len returns the number of code points in the document.
func (d Document) Len() int {
	return len(d.runes)
}

// IsEmpty reports whether the document has no text.
func (d Document) IsEmpty() bool {
	return len(d.runes) == 0
}

// Slice returns the text in [start, min(start+length, Len())). Out-of-range
// input is clamped and never panics: an empty document, a start at or past
// the end, or a non-positive length all yield "".
func (d Document) Slice(start, length int) string {
	n := len(d.runes)
	if n == 0 || length <= 0 {
		return ""
	}
	start = clamp(start, 0, n)
	if start >= n {
		return ""
	}
	end := start + min(length, n-start)
	return string(d.runes[start:end])
}

// sliceLen is the number of code points Slice(start, length) would return.
func (d Document) sliceLen(start, length int) int {
	n := len(d.runes)
	if n == 0 || length <= 0 {
		return 0
	}
	start = clamp(start, 0, n)
	return min(length, n-start)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
