package download

import "strings"

const (
	stepProgress  = 5
	maxStreaming  = 90
	verifyingMark = 95
	doneMark      = 100
)

// Advance returns the progress after observing one line of `ollama pull`
// output. It never returns less than progress.
func Advance(progress int, line string) int {
	l := strings.ToLower(line)
	next := progress
	switch {
	case strings.Contains(l, "downloading") || strings.Contains(l, "pulling"):
		next = min(progress+stepProgress, maxStreaming)
	case strings.Contains(l, "verifying"):
		next = verifyingMark
	case strings.Contains(l, "success"):
		next = doneMark
	}
	if next < progress {
		return progress
	}
	return next
}
