package format

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessageShort(t *testing.T) {
	chunks := SplitMessage("hello", 100)
	if len(chunks) != 1 || chunks[0] != "hello" {
		t.Fatalf("chunks = %v", chunks)
	}
}

func TestSplitMessagePrefersParagraphs(t *testing.T) {
	text := strings.Repeat("a", 60) + "\n\n" + strings.Repeat("b", 60)
	chunks := SplitMessage(text, 100)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[0], "a") || !strings.HasPrefix(chunks[1], "b") {
		t.Fatalf("split did not honor paragraph boundary: %v", chunks)
	}
	for _, c := range chunks {
		if len(c) > 100 {
			t.Fatalf("chunk over limit: %d", len(c))
		}
	}
}

func TestSplitMessageHardCut(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := SplitMessage(text, 100)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		if len(c) > 100 {
			t.Fatalf("chunk over limit: %d", len(c))
		}
		total += len(c)
	}
	if total != 250 {
		t.Fatalf("characters lost in hard cut: %d", total)
	}
}

func TestSplitMessageHardCutKeepsRunesIntact(t *testing.T) {
	text := strings.Repeat("п", 300)
	chunks := SplitMessage(text, 101)
	var rejoined strings.Builder
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Fatalf("chunk %d is invalid UTF-8: %q", i, c)
		}
		if len(c) > 101 {
			t.Fatalf("chunk %d over limit: %d", i, len(c))
		}
		rejoined.WriteString(c)
	}
	if rejoined.String() != text {
		t.Fatalf("runes lost across hard cuts")
	}
}
