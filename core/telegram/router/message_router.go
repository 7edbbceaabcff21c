package router

import (
	"time"

	tg "github.com/m3rciful/docbot/core/telegram"
	"github.com/m3rciful/docbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Conversations is the minimal interface the text router needs from the
// session layer: whether a chat has generation in flight, and the
// handler that advances the conversation.
type Conversations interface {
	InProgress(chatID int64) bool
	HandleText(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	Busy        tele.HandlerFunc
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the handler for plain text updates. Known commands
// typed without registration hit the registry lookup first; everything
// else flows into the conversation.
func TextRoutes(conv Conversations, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if conv != nil {
			chat := c.Chat()
			if chat != nil && conv.InProgress(chat.ID) {
				if opts.Busy != nil {
					return handleWithSummary(c, "conversation.busy", start, "skip", "ok", func() error {
						return opts.Busy(c)
					})
				}
				logHandlerSummary(c, "conversation.busy", start, "skip", "ok", nil)
				return nil
			}
			return handleWithSummary(c, "conversation", start, "", "", func() error {
				return conv.HandleText(c)
			})
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}
