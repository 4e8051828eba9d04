package extract

import "strings"

const (
	// DefaultSentinel marks the start of a retry in the log. Everything from it
	// onward is debugging chatter from later attempts.
	DefaultSentinel = "Container found"

	codeFence = "```"
)

// Truncate keeps the text before the first sentinel. Text without the
// sentinel, or an empty sentinel, is returned unchanged.
func Truncate(text, sentinel string) string {
	if sentinel == "" {
		return text
	}
	if i := strings.Index(text, sentinel); i >= 0 {
		return text[:i]
	}
	return text
}

// Clean keeps the span from the first '#' through the end of the last code
// fence, trimmed of surrounding whitespace.
//
// Without a '#' the result is empty. Without a fence the span runs to the end
// of text. A '#' that only appears after the last fence also yields "".
func Clean(text string) string {
	start := strings.IndexByte(text, '#')
	if start < 0 {
		return ""
	}
	end := lastFenceEnd(text)
	if end < 0 {
		end = len(text)
	}
	if start >= end {
		return ""
	}
	return strings.TrimSpace(text[start:end])
}

// lastFenceEnd returns the end offset of the last fence found by a
// left-to-right, non-overlapping scan, or -1. A run of four backticks ends
// after the third.
func lastFenceEnd(text string) int {
	end := -1
	for pos := 0; ; {
		i := strings.Index(text[pos:], codeFence)
		if i < 0 {
			return end
		}
		pos += i + len(codeFence)
		end = pos
	}
}

// Completions truncates and cleans each segment in order. Segments that are
// blank after truncation, or that clean down to nothing, are dropped and
// counted; survivors keep their relative order.
func Completions(segments []string, sentinel string) ([]string, int) {
	kept := make([]string, 0, len(segments))
	dropped := 0
	for _, seg := range segments {
		truncated := Truncate(seg, sentinel)
		if strings.TrimSpace(truncated) == "" {
			dropped++
			continue
		}
		cleaned := Clean(truncated)
		if cleaned == "" {
			dropped++
			continue
		}
		kept = append(kept, cleaned)
	}
	return kept, dropped
}
