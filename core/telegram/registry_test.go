package telegram

import (
	"testing"

	"github.com/m3rciful/docbot/core/logger"
	"github.com/m3rciful/docbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestRegistryCommands(t *testing.T) {
	if err := logger.InitLogger(nil); err != nil {
		t.Fatalf("init logger: %v", err)
	}

	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "Start"})
	reg.RegisterCommand("/stats", commands.Command{Handler: noopHandler, Description: "Stats", AdminOnly: true})
	reg.RegisterCommand("/cancel", commands.Command{Handler: noopHandler, Description: "Cancel", Aliases: []string{"abort"}})

	// Invalid registrations must be ignored.
	reg.RegisterCommand("start", commands.Command{Handler: noopHandler, Description: "no slash"})
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "duplicate"})
	reg.RegisterCommand("/empty", commands.Command{})

	if len(reg.Commands()) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(reg.Commands()))
	}

	visible := reg.ListCommands(true)
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible commands, got %d", len(visible))
	}
	for _, cmd := range visible {
		if cmd.Text == "/stats" {
			t.Fatal("admin-only command listed as visible")
		}
	}

	key, _, ok := reg.LookupCommand("/abort")
	if !ok || key != "/cancel" {
		t.Fatalf("alias lookup failed: key=%q ok=%v", key, ok)
	}
	if _, _, ok := reg.LookupCommand("/missing"); ok {
		t.Fatal("unexpected lookup hit")
	}
}

func TestRegistryCallbacks(t *testing.T) {
	if err := logger.InitLogger(nil); err != nil {
		t.Fatalf("init logger: %v", err)
	}

	reg := NewRegistry()
	if err := reg.RegisterCallback("menu", noopHandler); err != nil {
		t.Fatalf("register callback: %v", err)
	}
	if err := reg.RegisterCallback("menu", noopHandler); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.RegisterCallback("", noopHandler); err == nil {
		t.Fatal("expected invalid registration error")
	}

	if _, ok := reg.GetCallback("menu"); !ok {
		t.Fatal("callback not found")
	}
	if _, ok := reg.GetCallback("missing"); ok {
		t.Fatal("unexpected callback hit")
	}

	keys := reg.ListCallbacks()
	if len(keys) != 1 || keys[0] != "menu" {
		t.Fatalf("unexpected callback keys: %v", keys)
	}
}
