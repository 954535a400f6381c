package planner

import "strings"

const fenceMarker = "```"

// Extract isolates the JSON payload from free-form agent text. It is a
// best-effort heuristic, not a JSON parser: agents wrap their payload in
// code fences, prose, and stray punctuation, and the goal is to hand the
// deserializer the most plausible substring. When no JSON-looking span is
// found the trimmed input is returned unchanged and deserialization
// surfaces the failure.
//
// Steps, in order:
//  1. take the span strictly between the first and last code fence, when
//     both exist in order; otherwise strip stray backticks and zero-width
//     spaces from the ends
//  2. cut from the earliest of '{' / '[' ('{' wins position ties) to the
//     rightmost of '}' / ']'
func Extract(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}

	if first := strings.Index(s, fenceMarker); first >= 0 {
		last := strings.LastIndex(s, fenceMarker)
		if last > first {
			// Leading language tags ("json") survive this trim; the
			// bracket scan below drops them.
			s = strings.Trim(s[first+len(fenceMarker):last], "` \t\r\n")
		}
	} else {
		s = strings.Trim(s, "`​ \t\r\n")
	}

	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	start := objStart
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start = arrStart
	}
	if start < 0 {
		return s
	}

	end := strings.LastIndexByte(s, '}')
	if e := strings.LastIndexByte(s, ']'); e > end {
		end = e
	}
	if end < start {
		return s
	}

	return strings.TrimSpace(s[start : end+1])
}
