package botapp

import (
	"path/filepath"
	"strings"

	"github.com/m3rciful/docbot/core/telegram/format"
	tghelpers "github.com/m3rciful/docbot/core/telegram/helpers"
	"github.com/m3rciful/docbot/internal/generate"

	tele "gopkg.in/telebot.v4"
)

// conversation adapts the chat service to the text router.
type conversation struct {
	app *App
}

func (cv conversation) InProgress(chatID int64) bool {
	return cv.app.svc.InProgress(chatID)
}

func (cv conversation) HandleText(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}

	ctx := tghelpers.BuildContext(c)
	tghelpers.Notify(c, tele.Typing)

	reply, err := cv.app.svc.HandleMessage(ctx, chat.ID, text)
	if err != nil {
		return tghelpers.SendText(c,
			"I couldn't generate that. "+generate.DiagnoseAPIError(err)+" Everything you've told me so far is saved - just try again.")
	}

	if reply.Question != "" {
		return tghelpers.SendText(c, reply.Question)
	}

	for _, chunk := range format.SplitMessage(reply.Text, format.MaxMessageLength) {
		if err := tghelpers.SendText(c, chunk); err != nil {
			return err
		}
	}

	if reply.PDFErr != nil {
		return tghelpers.SendText(c, "The text above is ready, but I couldn't produce the PDF file. Please try again.")
	}

	if reply.PDFPath != "" {
		tghelpers.Notify(c, tele.UploadingDocument)
		doc := &tele.Document{
			File:     tele.FromDisk(reply.PDFPath),
			FileName: filepath.Base(reply.PDFPath),
		}
		// Sent synchronously: the session is only cleared once the
		// document actually reached the chat.
		if err := c.Send(doc); err != nil {
			return tghelpers.SendText(c, "The text above is ready, but uploading the PDF failed. Please try again.")
		}
		// General chat keeps its session for the next turn; a delivered
		// document completes the request.
		if !reply.General {
			cv.app.svc.FinishDelivery(chat.ID)
		}
	}

	return nil
}
