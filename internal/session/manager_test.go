package session

import (
	"sync"
	"testing"
	"time"

	"github.com/m3rciful/docbot/core/logger"
)

func initTestLogger(t *testing.T) {
	t.Helper()
	if err := logger.InitLogger(nil); err != nil {
		t.Fatalf("init logger: %v", err)
	}
}

func TestTouchCreatesSession(t *testing.T) {
	initTestLogger(t)
	m := NewManager(time.Minute)
	defer m.Close()

	if m.Active() != 0 {
		t.Fatalf("expected no sessions, got %d", m.Active())
	}
	m.Touch(1)
	if m.Active() != 1 {
		t.Fatalf("expected 1 session, got %d", m.Active())
	}
	s, ok := m.Get(1)
	if !ok {
		t.Fatal("session not found")
	}
	if len(s.Fields) != 0 || s.DocumentType != "" {
		t.Fatalf("fresh session not empty: %+v", s)
	}
}

func TestMergeFieldsOverwrites(t *testing.T) {
	initTestLogger(t)
	m := NewManager(time.Minute)
	defer m.Close()

	m.MergeFields(7, map[string]string{"name": "John Doe", "date": "01/01/2026"})
	m.MergeFields(7, map[string]string{"name": "Jane Roe"})

	s, ok := m.Get(7)
	if !ok {
		t.Fatal("session not found")
	}
	if s.Fields["name"] != "Jane Roe" {
		t.Fatalf("expected overwritten name, got %q", s.Fields["name"])
	}
	if s.Fields["date"] != "01/01/2026" {
		t.Fatalf("expected retained date, got %q", s.Fields["date"])
	}
}

func TestClearUnconditional(t *testing.T) {
	initTestLogger(t)
	m := NewManager(time.Minute)
	defer m.Close()

	m.SetDocumentType(3, "letter")
	m.SetInProgress(3, true)
	m.Clear(3)

	if _, ok := m.Get(3); ok {
		t.Fatal("session survived clear")
	}
	// Clearing a missing session is a no-op.
	m.Clear(3)
}

func TestIdleExpiry(t *testing.T) {
	initTestLogger(t)
	m := NewManager(50 * time.Millisecond)
	defer m.Close()

	var (
		mu      sync.Mutex
		expired []Session
	)
	m.OnExpire = func(s Session) {
		mu.Lock()
		expired = append(expired, s)
		mu.Unlock()
	}

	m.SetDocumentType(9, "affidavit")
	m.MergeFields(9, map[string]string{"name": "John Doe"})

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(expired)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("session did not expire")
		case <-time.After(10 * time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if expired[0].ChatID != 9 || expired[0].DocumentType != "affidavit" {
		t.Fatalf("unexpected expiry snapshot: %+v", expired[0])
	}
	if expired[0].Fields["name"] != "John Doe" {
		t.Fatalf("expiry snapshot missing fields: %+v", expired[0].Fields)
	}
	if m.Active() != 0 {
		t.Fatalf("expired session still active: %d", m.Active())
	}
}

func TestTouchResetsIdleTimer(t *testing.T) {
	initTestLogger(t)
	m := NewManager(120 * time.Millisecond)
	defer m.Close()

	m.Touch(4)
	for i := 0; i < 4; i++ {
		time.Sleep(60 * time.Millisecond)
		m.Touch(4)
	}
	// 240ms elapsed since creation, but activity kept it alive.
	if m.Active() != 1 {
		t.Fatal("session expired despite activity")
	}

	time.Sleep(300 * time.Millisecond)
	if m.Active() != 0 {
		t.Fatal("session survived idle period")
	}
}

func TestInProgressFlag(t *testing.T) {
	initTestLogger(t)
	m := NewManager(time.Minute)
	defer m.Close()

	if m.InProgress(5) {
		t.Fatal("missing session reported in progress")
	}
	m.Touch(5)
	m.SetInProgress(5, true)
	if !m.InProgress(5) {
		t.Fatal("expected in-progress session")
	}
	m.SetInProgress(5, false)
	if m.InProgress(5) {
		t.Fatal("expected idle session")
	}
}
