package markdown

import "strings"

// ReplaceBlock rewrites the text between start and end markers, appending a
// fresh block when the markers are missing. Text outside the block is kept.
func ReplaceBlock(body, start, end, generated string) string {
	block := start + "\n" + strings.TrimRight(generated, "\n") + "\n" + end

	if from := strings.Index(body, start); from >= 0 {
		if to := strings.Index(body[from:], end); to >= 0 {
			to += from + len(end)
			return body[:from] + block + body[to:]
		}
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
