// Package document renders generated text into templated PDF files.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/m3rciful/docbot/core/logger"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

const (
	pageMargin  = 72.0
	titleSize   = 18.0
	headerSize  = 12.0
	bodySize    = 11.0
	bodyLeading = 16.0
	signSize    = 10.0
)

// Renderer writes PDFs under a per-chat directory inside outputDir.
type Renderer struct {
	outputDir string
}

// NewRenderer creates the output directory if needed.
func NewRenderer(outputDir string) (*Renderer, error) {
	if strings.TrimSpace(outputDir) == "" {
		outputDir = "generated"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("document: create output dir: %w", err)
	}
	return &Renderer{outputDir: outputDir}, nil
}

// Render lays out the generated text using the static template for the
// document type and returns the path of the written PDF.
func (r *Renderer) Render(ctx context.Context, chatID int64, docType Type, text string, fields map[string]string) (string, error) {
	start := time.Now()

	dir := filepath.Join(r.outputDir, strconv.FormatInt(chatID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("document: create chat dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%s.pdf",
		docType.FileStem(),
		time.Now().Format("20060102_150405"),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
	)
	path := filepath.Join(dir, name)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title, centered and uppercased.
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.CellFormat(0, titleSize+8, tr(strings.ToUpper(docType.Label())), "", 1, "C", false, 0, "")
	pdf.Ln(20)

	// Known fields form the document header.
	pdf.SetFont("Helvetica", "B", headerSize)
	if name := fields["name"]; name != "" {
		pdf.CellFormat(0, headerSize+4, tr("Name: "+name), "", 1, "L", false, 0, "")
	}
	if addr := fields["address"]; addr != "" {
		pdf.CellFormat(0, headerSize+4, tr("Address: "+addr), "", 1, "L", false, 0, "")
	}
	pdf.Ln(12)

	date := fields["date"]
	if date == "" {
		date = time.Now().Format("02/01/2006")
	}
	pdf.CellFormat(0, headerSize+4, tr("Date: "+date), "", 1, "L", false, 0, "")
	pdf.Ln(12)

	// Body paragraphs. To/From/Subject lines keep the bold header style.
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		switch {
		case strings.HasPrefix(para, "To:"), strings.HasPrefix(para, "From:"), strings.HasPrefix(para, "Subject:"):
			pdf.SetFont("Helvetica", "B", headerSize)
			pdf.MultiCell(0, headerSize+4, tr(para), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", bodySize)
			pdf.MultiCell(0, bodyLeading, tr(para), "", "L", false)
		}
		pdf.Ln(8)
	}

	// Signature block, right aligned.
	pdf.Ln(30)
	pdf.SetFont("Helvetica", "", signSize)
	pdf.CellFormat(0, signSize+4, strings.Repeat("_", 30), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, signSize+4, "Signature", "", 1, "R", false, 0, "")
	if name := fields["name"]; name != "" {
		pdf.CellFormat(0, signSize+4, tr("("+name+")"), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		logger.Error(ctx, "document", "render.failed",
			slog.String("doc_type", docType.String()),
			slog.String("file", name),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return "", fmt.Errorf("document: write pdf: %w", err)
	}

	logger.Info(ctx, "document", "render.ok",
		slog.String("doc_type", docType.String()),
		slog.String("file", name),
		slog.Int("chars", len(text)),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	)
	return path, nil
}
