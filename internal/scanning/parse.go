package scanning

import (
	"fmt"
	"strings"
)

// cleanTranscript strips the wrapping vision models add despite being asked
// not to: markdown fences and a leading "Here is the text" style preamble.
// It returns ErrNoTextFound when nothing is left.
func cleanTranscript(text string) (string, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	if strings.HasPrefix(text, "```") {
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	if first, rest, ok := strings.Cut(text, "\n"); ok && isPreamble(first) {
		text = rest
	}

	text = strings.TrimSpace(text)
	if text == "" || isNoTextReply(text) {
		return "", fmt.Errorf("transcribing receipt: %w", ErrNoTextFound)
	}
	return text, nil
}

func isPreamble(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	return strings.HasSuffix(line, ":") &&
		(strings.HasPrefix(line, "here is") || strings.HasPrefix(line, "here's") || strings.HasPrefix(line, "sure"))
}

func isNoTextReply(text string) bool {
	switch strings.ToLower(strings.Trim(text, " .\n")) {
	case "no text", "no readable text", "nothing", "none", "n/a":
		return true
	}
	return false
}
