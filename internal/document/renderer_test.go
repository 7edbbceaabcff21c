package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m3rciful/docbot/core/logger"
)

func TestRenderWritesPDF(t *testing.T) {
	if err := logger.InitLogger(nil); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	dir := t.TempDir()
	r, err := NewRenderer(dir)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	text := "To: The Manager\nSubject: Test Request\n\nDear Sir,\n\nThis is the body of the letter.\n\nYours faithfully,"
	path, err := r.Render(context.Background(), 42, TypeLetter, text, map[string]string{
		"name":    "John Doe",
		"address": "123 Main Street",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if filepath.Dir(path) != filepath.Join(dir, "42") {
		t.Fatalf("pdf not placed in per-chat dir: %s", path)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "letter_") || !strings.HasSuffix(base, ".pdf") {
		t.Fatalf("unexpected file name: %s", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if len(data) < 512 {
		t.Fatalf("pdf suspiciously small: %d bytes", len(data))
	}
	if !strings.HasPrefix(string(data[:5]), "%PDF-") {
		t.Fatalf("missing pdf header: %q", data[:8])
	}
}

func TestRenderDistinctFiles(t *testing.T) {
	if err := logger.InitLogger(nil); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	p1, err := r.Render(context.Background(), 1, TypeAffidavit, "first", nil)
	if err != nil {
		t.Fatalf("render 1: %v", err)
	}
	p2, err := r.Render(context.Background(), 1, TypeAffidavit, "second", nil)
	if err != nil {
		t.Fatalf("render 2: %v", err)
	}
	if p1 == p2 {
		t.Fatalf("renders collided on path %s", p1)
	}
}

func TestTypeLabels(t *testing.T) {
	if len(All()) != 6 {
		t.Fatalf("expected 6 document types, got %d", len(All()))
	}
	for _, dt := range All() {
		if !Valid(dt) {
			t.Errorf("type %q not valid", dt)
		}
		if dt.Label() == "Document" {
			t.Errorf("type %q missing label", dt)
		}
	}
	if Valid(Type("bogus")) {
		t.Fatal("bogus type reported valid")
	}
	if Type("bogus").Label() != "Document" {
		t.Fatal("unknown type should fall back to generic label")
	}
}

func TestGeneralType(t *testing.T) {
	if Valid(TypeGeneral) {
		t.Fatal("general mode must not be selectable from the document menu")
	}
	if TypeGeneral.Label() != "AI Assistant Response" {
		t.Fatalf("label = %q", TypeGeneral.Label())
	}
	if TypeGeneral.FileStem() != "chat_response" {
		t.Fatalf("file stem = %q", TypeGeneral.FileStem())
	}
	if TypeLetter.FileStem() != "letter" {
		t.Fatalf("file stem = %q", TypeLetter.FileStem())
	}
}

func TestRenderGeneralChatResponse(t *testing.T) {
	if err := logger.InitLogger(nil); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	path, err := r.Render(context.Background(), 7, TypeGeneral, "Here is what I found.", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "chat_response_") {
		t.Fatalf("unexpected file name: %s", filepath.Base(path))
	}
}
