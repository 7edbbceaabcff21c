package format

import (
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the Telegram hard limit for a single text message.
const MaxMessageLength = 4096

// SplitMessage breaks text into chunks that fit a single Telegram message,
// preferring paragraph then line boundaries over hard cuts.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	rest := text
	for len(rest) > limit {
		cut := strings.LastIndex(rest[:limit], "\n\n")
		if cut < limit/2 {
			cut = strings.LastIndex(rest[:limit], "\n")
		}
		if cut < limit/2 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(rest[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}
		chunks = append(chunks, strings.TrimRight(rest[:cut], "\n"))
		rest = strings.TrimLeft(rest[cut:], "\n")
	}
	if rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}
