package pager

import (
	"fmt"
	"math"
)

// CalculateProgress returns location/total clamped to [0, 1], or 0 when
// total is not positive.
func CalculateProgress(location, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clampFloat(float64(location)/float64(total), 0, 1)
}

// FormatProgress renders a progress fraction as a whole percentage, e.g. "42%".
func FormatProgress(progress float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(clampFloat(progress, 0, 1)*100)))
}

// CalculatePageCount returns ceil(length/perPage).
func CalculatePageCount(length, perPage int) int {
	if length <= 0 || perPage <= 0 {
		return 0
	}
	return (length + perPage - 1) / perPage
}

// NextPageLocation returns the start of the page after current, or current
// when no further page exists.
func NextPageLocation(current, perPage, total int) int {
	if perPage <= 0 || current+perPage >= total {
		return current
	}
	return current + perPage
}

// PreviousPageLocation returns the start of the page before current,
// stopping at 0.
func PreviousPageLocation(current, perPage int) int {
	if perPage <= 0 {
		return max(current, 0)
	}
	return max(current-perPage, 0)
}
