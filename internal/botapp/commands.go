package botapp

import (
	"fmt"
	"strings"
	"time"

	"github.com/m3rciful/docbot/core/buildinfo"
	"github.com/m3rciful/docbot/core/telegram/commands"
	"github.com/m3rciful/docbot/core/telegram/format"
	tghelpers "github.com/m3rciful/docbot/core/telegram/helpers"
	"github.com/m3rciful/docbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

const welcomeText = `*Document Bot*

I can chat with you or generate formatted PDF documents: affidavits, letters, contracts, certificates and more.

Pick an option below, or just describe the document you need.`

const helpTextFmt = `*How to use this bot*

1. Tap *Generate Document* and pick a document type.
2. Describe what you need in one message. Include names, addresses and dates - I pick them up automatically.
3. I may ask a follow-up question if something essential is missing.
4. You get the text right in the chat plus a formatted PDF file.

*Commands*
/start - restart from the main menu
/menu - show the main menu
/cancel - forget everything from this session
/help - this message

Sessions are dropped after %s of inactivity.`

func mainMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "💬 Chat with AI", Unique: cbMenuChat},
		{Text: "📄 Generate Document", Unique: cbMenuGenerate},
		{Text: "ℹ️ Help", Unique: cbMenuHelp},
	})
}

func (a *App) registerCommands() {
	a.reg.RegisterCommand("/start", commands.Command{
		Description: "Restart and show the main menu",
		Handler:     a.handleStart,
	})
	a.reg.RegisterCommand("/menu", commands.Command{
		Description: "Show the main menu",
		Handler:     a.handleMenu,
	})
	a.reg.RegisterCommand("/help", commands.Command{
		Description: "How to use the bot",
		Handler:     a.handleHelp,
	})
	a.reg.RegisterCommand("/cancel", commands.Command{
		Description: "Clear the current session",
		Aliases:     []string{"reset"},
		Handler:     a.handleCancel,
	})
	a.reg.RegisterCommand("/stats", commands.Command{
		Description: "Runtime counters",
		AdminOnly:   true,
		Hidden:      true,
		Handler:     a.handleStats,
	})
}

func (a *App) handleStart(c tele.Context) error {
	if chat := c.Chat(); chat != nil {
		// A fresh /start always starts from a clean slate.
		a.svc.Cancel(chat.ID)
	}
	return tghelpers.SendMD(c, welcomeText, mainMenu())
}

func (a *App) handleMenu(c tele.Context) error {
	return tghelpers.SendMD(c, welcomeText, mainMenu())
}

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendMD(c, fmt.Sprintf(helpTextFmt, idleWording(a.idleTimeout)))
}

func (a *App) handleCancel(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	a.svc.Cancel(chat.ID)
	return tghelpers.SendText(c, "Session cleared. Send /start when you need me again.")
}

func (a *App) handleStats(c tele.Context) error {
	var sendErrs uint64
	if disp := a.dispatcher.Load(); disp != nil {
		sendErrs = disp.ErrorCount()
	}
	uptime := a.uptime()

	version, _ := format.EscapeMarkdown(buildinfo.Version, format.MarkdownV1)
	commit, _ := format.EscapeMarkdown(buildinfo.Commit, format.MarkdownV1)

	var b strings.Builder
	fmt.Fprintf(&b, "*Runtime stats*\n")
	fmt.Fprintf(&b, "version: %s (%s)\n", version, commit)
	fmt.Fprintf(&b, "uptime: %s\n", uptime)
	fmt.Fprintf(&b, "active sessions: %d\n", a.svc.Sessions().Active())
	fmt.Fprintf(&b, "send errors: %d", sendErrs)
	return tghelpers.SendMD(c, b.String())
}

func (a *App) uptime() string {
	return time.Since(a.startedAt).Truncate(time.Second).String()
}
