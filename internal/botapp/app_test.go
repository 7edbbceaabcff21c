package botapp

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	coreconfig "github.com/m3rciful/docbot/core/config"
)

func testConfig(t *testing.T) *coreconfig.Config {
	t.Helper()
	cfg := &coreconfig.Config{}
	cfg.Telegram.Token = "123:test-token"
	cfg.Groq.APIKey = "test-key"
	cfg.Documents.OutputDir = filepath.Join(t.TempDir(), "generated")
	if err := coreconfig.Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return cfg
}

func TestNewAppWiring(t *testing.T) {
	app, err := NewApp(testConfig(t))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { app.svc.Sessions().Close() })

	for _, name := range []string{"/start", "/menu", "/help", "/cancel", "/stats"} {
		if _, _, ok := app.reg.LookupCommand(name); !ok {
			t.Errorf("command %s not registered", name)
		}
	}
	if _, cmd, _ := app.reg.LookupCommand("/stats"); !cmd.AdminOnly || !cmd.Hidden {
		t.Error("/stats must be hidden and admin-only")
	}
	if _, _, ok := app.reg.LookupCommand("/reset"); !ok {
		t.Error("/cancel alias /reset not resolvable")
	}

	for _, key := range []string{cbMenuChat, cbMenuGenerate, cbMenuHelp, cbMenuBack, cbDocType} {
		if _, ok := app.reg.GetCallback(key); !ok {
			t.Errorf("callback %q not registered", key)
		}
	}

	if app.CoreConfig() == nil {
		t.Fatal("nil core config")
	}
}

func TestIdleTimeoutWording(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{10 * time.Minute, "10 minutes"},
		{time.Minute, "1 minute"},
		{90 * time.Second, "90 seconds"},
		{2 * time.Hour, "120 minutes"},
	}
	for _, tc := range cases {
		if got := idleWording(tc.d); got != tc.want {
			t.Errorf("idleWording(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestIdleTimeoutFollowsConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Session.IdleTimeoutSeconds = 300
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { app.svc.Sessions().Close() })

	if app.idleTimeout != 5*time.Minute {
		t.Fatalf("idle timeout = %v", app.idleTimeout)
	}
	help := fmt.Sprintf(helpTextFmt, idleWording(app.idleTimeout))
	if !strings.Contains(help, "5 minutes") {
		t.Fatalf("help text does not reflect configured timeout: %q", help)
	}
}

func TestDocTypeMenuLayout(t *testing.T) {
	markup := docTypeMenu()
	var buttons int
	for _, row := range markup.InlineKeyboard {
		if len(row) > 2 {
			t.Fatalf("row wider than 2 buttons: %d", len(row))
		}
		buttons += len(row)
	}
	// Six document types plus the back button.
	if buttons != 7 {
		t.Fatalf("expected 7 buttons, got %d", buttons)
	}
}
