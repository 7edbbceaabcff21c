package generate

import (
	"strings"
	"testing"
)

func TestSystemPromptFallback(t *testing.T) {
	if SystemPrompt("affidavit") == SystemPrompt(GeneralType) {
		t.Fatal("affidavit prompt should differ from general")
	}
	if SystemPrompt("unknown-type") != SystemPrompt(GeneralType) {
		t.Fatal("unknown type should fall back to general")
	}
	if SystemPrompt(" Letter ") != SystemPrompt("letter") {
		t.Fatal("lookup should be case- and space-insensitive")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := buildUserPrompt("letter", "write to my landlord", map[string]string{
		"name":    "John Doe",
		"address": "123 Main Street",
		"empty":   "",
	})

	if !strings.HasPrefix(got, "Create a letter based on this request: write to my landlord") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, "- Name: John Doe") {
		t.Fatalf("missing name line: %q", got)
	}
	if !strings.Contains(got, "- Address: 123 Main Street") {
		t.Fatalf("missing address line: %q", got)
	}
	if strings.Contains(got, "Empty") {
		t.Fatalf("empty field should be skipped: %q", got)
	}

	// Field lines are emitted in sorted key order.
	if strings.Index(got, "- Address:") > strings.Index(got, "- Name:") {
		t.Fatalf("fields not sorted: %q", got)
	}
}

func TestBuildUserPromptNoFields(t *testing.T) {
	got := buildUserPrompt("contract", "simple request", nil)
	if strings.Contains(got, "Extracted information") {
		t.Fatalf("no fields section expected: %q", got)
	}
}

func TestPrecheckSystemPrompt(t *testing.T) {
	got := precheckSystemPrompt("certificate")
	if !strings.Contains(got, "certificate") {
		t.Fatalf("doc type missing: %q", got)
	}
	if !strings.Contains(got, `"GENERATE"`) || !strings.Contains(got, `"QUESTION:`) {
		t.Fatalf("protocol markers missing: %q", got)
	}
}
