package botapp

import (
	"fmt"

	"github.com/m3rciful/docbot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/docbot/core/telegram/helpers"
	"github.com/m3rciful/docbot/core/telegram/keyboard"
	"github.com/m3rciful/docbot/internal/document"

	tele "gopkg.in/telebot.v4"
)

// Callback keys used by inline keyboards.
const (
	cbMenuChat     = "menu_chat"
	cbMenuGenerate = "menu_generate"
	cbMenuHelp     = "menu_help"
	cbMenuBack     = "menu_back"
	cbDocType      = "doc"
)

func docTypeMenu() *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(document.All())+1)
	for _, dt := range document.All() {
		btns = append(btns, keyboard.InlineBtn{
			Text:   dt.Label(),
			Unique: cbDocType,
			Data:   dt.String(),
		})
	}
	btns = append(btns, keyboard.InlineBtn{Text: "« Back", Unique: cbMenuBack})
	return keyboard.InlineButtonsNPerRow(btns, 2)
}

func (a *App) registerCallbacks() {
	_ = a.reg.RegisterCallback(cbMenuChat, a.cbChat)
	_ = a.reg.RegisterCallback(cbMenuGenerate, a.cbGenerate)
	_ = a.reg.RegisterCallback(cbMenuHelp, a.cbHelp)
	_ = a.reg.RegisterCallback(cbMenuBack, a.cbBack)
	_ = a.reg.RegisterCallback(cbDocType, a.cbDocSelected)
}

func (a *App) cbChat(c tele.Context) error {
	if chat := c.Chat(); chat != nil {
		a.svc.StartGeneralChat(chat.ID)
	}
	return tghelpers.EditOrSendMD(c, "Chat mode. Ask me anything - you get the answer right here plus a PDF copy. /cancel to stop.")
}

func (a *App) cbGenerate(c tele.Context) error {
	return tghelpers.EditOrSendMD(c, "*Pick a document type:*", docTypeMenu())
}

func (a *App) cbHelp(c tele.Context) error {
	return tghelpers.EditOrSendMD(c, fmt.Sprintf(helpTextFmt, idleWording(a.idleTimeout)))
}

func (a *App) cbBack(c tele.Context) error {
	return tghelpers.EditOrSendMD(c, welcomeText, mainMenu())
}

func (a *App) cbDocSelected(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	dt := document.Type(callbacks.CallbackPayload(c))
	if !document.Valid(dt) {
		_ = c.Respond(&tele.CallbackResponse{Text: "Unknown document type"})
		return nil
	}
	a.svc.SelectDocumentType(chat.ID, dt)
	return tghelpers.EditOrSendMD(c,
		"*"+dt.Label()+"*\n\nDescribe what you need in one message. Include names, addresses and dates where relevant - I'll pick them up automatically.",
		keyboard.SingleCancelMarkup(cbMenuBack, "", "« Back"))
}
