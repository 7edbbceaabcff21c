// Package chat orchestrates a conversation turn: session upkeep, field
// extraction, completion calls, and PDF rendering.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/docbot/core/logger"
	"github.com/m3rciful/docbot/internal/document"
	"github.com/m3rciful/docbot/internal/extract"
	"github.com/m3rciful/docbot/internal/generate"
	"github.com/m3rciful/docbot/internal/session"
)

// Generator produces document text from a request and merged fields.
type Generator interface {
	CheckMissingInfo(ctx context.Context, docType, request string) string
	Generate(ctx context.Context, docType, request string, fields map[string]string) (string, error)
}

// Renderer turns generated text into a PDF on disk.
type Renderer interface {
	Render(ctx context.Context, chatID int64, docType document.Type, text string, fields map[string]string) (string, error)
}

// Reply is the outcome of one conversation turn. Exactly one of
// Question or Text is set on success; PDFPath accompanies Text. A
// non-nil PDFErr means the text stands but the PDF could not be
// produced. General marks free-form chat turns, whose sessions stay
// alive after delivery.
type Reply struct {
	Question string
	Text     string
	PDFPath  string
	PDFErr   error
	General  bool
}

// Service wires the session manager to generation and rendering.
type Service struct {
	sessions *session.Manager
	gen      Generator
	renderer Renderer
}

// NewService builds the conversation service.
func NewService(sessions *session.Manager, gen Generator, renderer Renderer) *Service {
	return &Service{sessions: sessions, gen: gen, renderer: renderer}
}

// Sessions exposes the underlying manager for command handlers.
func (s *Service) Sessions() *session.Manager {
	return s.sessions
}

// SelectDocumentType records the chat's requested document type.
func (s *Service) SelectDocumentType(chatID int64, dt document.Type) {
	s.sessions.SetDocumentType(chatID, dt.String())
}

// StartGeneralChat switches the chat into free-form mode.
func (s *Service) StartGeneralChat(chatID int64) {
	s.sessions.SetDocumentType(chatID, generate.GeneralType)
}

// Cancel drops the chat's session unconditionally.
func (s *Service) Cancel(chatID int64) {
	s.sessions.Clear(chatID)
}

// InProgress reports whether a turn is currently being generated.
func (s *Service) InProgress(chatID int64) bool {
	return s.sessions.InProgress(chatID)
}

// HandleMessage runs one conversation turn for the chat. On generation
// failure the error is returned and the session, including every field
// merged so far, is left intact for the next attempt.
func (s *Service) HandleMessage(ctx context.Context, chatID int64, text string) (Reply, error) {
	start := time.Now()

	s.sessions.Touch(chatID)
	if fields := extract.Fields(text); len(fields) > 0 {
		s.sessions.MergeFields(chatID, fields)
		logger.Debug(ctx, "chat", "fields.merged",
			slog.Int64("chat_id", chatID),
			slog.Int("field_keys", len(fields)),
		)
	}

	snap, _ := s.sessions.Get(chatID)
	docType := strings.TrimSpace(snap.DocumentType)
	if docType == "" {
		docType = generate.GeneralType
	}

	s.sessions.SetInProgress(chatID, true)
	defer s.sessions.SetInProgress(chatID, false)

	if docType != generate.GeneralType {
		if q := s.gen.CheckMissingInfo(ctx, docType, text); q != "" {
			logger.Info(ctx, "chat", "turn.question",
				slog.Int64("chat_id", chatID),
				slog.String("doc_type", docType),
				slog.String("question", logger.SanitizeLimit(q, 256)),
			)
			return Reply{Question: q}, nil
		}
	}

	out, err := s.gen.Generate(ctx, docType, text, snap.Fields)
	if err != nil {
		// The session and its fields survive for a retry.
		return Reply{}, err
	}

	reply := Reply{Text: out, General: docType == generate.GeneralType}
	if s.renderer != nil {
		path, rerr := s.renderer.Render(ctx, chatID, document.Type(docType), out, snap.Fields)
		if rerr != nil {
			reply.PDFErr = rerr
		} else {
			reply.PDFPath = path
		}
	}

	logger.Info(ctx, "chat", "turn.completed",
		slog.Int64("chat_id", chatID),
		slog.String("doc_type", docType),
		slog.Int("chars", len(out)),
		slog.Bool("pdf", reply.PDFPath != ""),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	)
	return reply, nil
}

// FinishDelivery clears the session once the rendered document reached
// the user. General chat sessions stay alive until the idle timeout.
func (s *Service) FinishDelivery(chatID int64) {
	s.sessions.Clear(chatID)
}
