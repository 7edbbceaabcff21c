// Package botapp assembles the document bot: configuration, session
// manager, completion client, PDF renderer, and Telegram wiring.
package botapp

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/m3rciful/docbot/core/bootstrap"
	coreconfig "github.com/m3rciful/docbot/core/config"
	"github.com/m3rciful/docbot/core/logger"
	coretelegram "github.com/m3rciful/docbot/core/telegram"
	"github.com/m3rciful/docbot/core/telegram/router"
	tgsender "github.com/m3rciful/docbot/core/telegram/sender"
	"github.com/m3rciful/docbot/internal/chat"
	"github.com/m3rciful/docbot/internal/document"
	"github.com/m3rciful/docbot/internal/generate"
	"github.com/m3rciful/docbot/internal/session"

	tele "gopkg.in/telebot.v4"
)

// App carries the bot's long-lived components.
type App struct {
	cfg         *coreconfig.Config
	svc         *chat.Service
	reg         *coretelegram.Registry
	idleTimeout time.Duration

	bot        atomic.Pointer[tele.Bot]
	dispatcher atomic.Pointer[tgsender.Dispatcher]
	startedAt  time.Time
}

// NewApp bootstraps infrastructure and wires the conversation service.
func NewApp(cfg *coreconfig.Config) (*App, error) {
	boot, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}

	renderer, err := document.NewRenderer(boot.OutputDir)
	if err != nil {
		return nil, err
	}

	idle := time.Duration(cfg.Session.IdleTimeoutSeconds) * time.Second
	sessions := session.NewManager(idle)
	gen := generate.NewClient(cfg.Groq, nil)

	app := &App{
		cfg:         cfg,
		svc:         chat.NewService(sessions, gen, renderer),
		reg:         coretelegram.NewRegistry(),
		idleTimeout: idle,
		startedAt:   time.Now(),
	}
	sessions.OnExpire = app.notifyExpired

	app.registerCommands()
	app.registerCallbacks()
	return app, nil
}

// CoreConfig satisfies the runner's ConfigCarrier contract.
func (a *App) CoreConfig() *coreconfig.Config {
	return a.cfg
}

// TelegramRunOptions builds the bot runtime wiring.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	onLimited := func(c tele.Context) error {
		return c.Send("You're sending messages too quickly. Give me a second.")
	}

	routes := router.CommandRoutes(a.reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(a.reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(conversation{app: a}, a.reg, router.TextOptions{
		Busy: func(c tele.Context) error {
			return c.Send("Still working on your previous request, one moment.")
		},
	})...)

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    a.reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, onLimited),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.bot.Store(rt.Bot)
			a.dispatcher.Store(rt.Dispatcher)
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.svc.Sessions().Close()
			return nil
		},
	}, nil
}

// idleWording renders the idle timeout for user-facing messages, in
// whole minutes when it divides evenly and seconds otherwise.
func idleWording(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return fmt.Sprintf("%d seconds", int(d/time.Second))
}

// notifyExpired tells the chat its state was dropped. Runs from the
// session manager's timer goroutine, so sends go through the dispatcher.
func (a *App) notifyExpired(s session.Session) {
	bot := a.bot.Load()
	if bot == nil {
		return
	}
	notice := "Your session expired after " + idleWording(a.idleTimeout) + " of inactivity. Send /start to begin again."
	run := func() error {
		_, err := bot.Send(&tele.Chat{ID: s.ChatID}, notice)
		return err
	}

	ctx := logger.Background()
	if disp := a.dispatcher.Load(); disp != nil {
		if err := disp.Enqueue(ctx, "session.expired.notify", "sendMessage", run); err == nil {
			return
		}
	}
	if err := run(); err != nil {
		logger.Warn(ctx, "session", "expired.notify.failed",
			slog.Int64("chat_id", s.ChatID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
}
