package session

import (
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/m3rciful/docbot/core/logger"
)

// DefaultIdleTimeout is applied when the manager is created with a
// non-positive timeout.
const DefaultIdleTimeout = 10 * time.Minute

// Session is a snapshot of one chat's conversation state.
type Session struct {
	ChatID       int64
	DocumentType string
	Fields       map[string]string
	CreatedAt    time.Time
	LastActivity time.Time
	InProgress   bool
}

type entry struct {
	docType    string
	fields     map[string]string
	createdAt  time.Time
	lastSeen   time.Time
	inProgress bool
	timer      *time.Timer
}

// Manager keeps per-chat sessions in memory and expires them after an
// idle period. Expiry runs the OnExpire callback outside the lock.
type Manager struct {
	mu          sync.Mutex
	sessions    map[int64]*entry
	idleTimeout time.Duration

	// OnExpire is invoked with the expired session snapshot. It must be
	// set before the first Touch and never changed afterwards.
	OnExpire func(Session)
}

// NewManager builds a Manager with the given idle timeout.
func NewManager(idleTimeout time.Duration) *Manager {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Manager{
		sessions:    make(map[int64]*entry),
		idleTimeout: idleTimeout,
	}
}

// Touch creates the chat's session if absent and resets its idle timer.
func (m *Manager) Touch(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	e, ok := m.sessions[chatID]
	if !ok {
		e = &entry{
			fields:    make(map[string]string),
			createdAt: now,
		}
		m.sessions[chatID] = e
		logger.SES.Debug("session created",
			slog.String("event", "session.created"),
			slog.Int64("chat_id", chatID),
			slog.Int64("idle_timeout_ms", m.idleTimeout.Milliseconds()),
		)
	}
	e.lastSeen = now
	m.resetTimerLocked(chatID, e)
}

// MergeFields overlays fields onto the chat's session, creating it if
// needed. Later values overwrite earlier ones key by key.
func (m *Manager) MergeFields(chatID int64, fields map[string]string) {
	if len(fields) == 0 {
		m.Touch(chatID)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	e, ok := m.sessions[chatID]
	if !ok {
		e = &entry{
			fields:    make(map[string]string),
			createdAt: now,
		}
		m.sessions[chatID] = e
	}
	maps.Copy(e.fields, fields)
	e.lastSeen = now
	m.resetTimerLocked(chatID, e)
}

// SetDocumentType records the requested document type for the chat.
func (m *Manager) SetDocumentType(chatID int64, docType string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	e, ok := m.sessions[chatID]
	if !ok {
		e = &entry{
			fields:    make(map[string]string),
			createdAt: now,
		}
		m.sessions[chatID] = e
	}
	e.docType = docType
	e.lastSeen = now
	m.resetTimerLocked(chatID, e)
}

// SetInProgress flags the chat as having a generation in flight.
func (m *Manager) SetInProgress(chatID int64, v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[chatID]; ok {
		e.inProgress = v
	}
}

// InProgress reports whether a generation is currently running for the chat.
func (m *Manager) InProgress(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[chatID]
	return ok && e.inProgress
}

// Get returns a snapshot of the chat's session.
func (m *Manager) Get(chatID int64) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[chatID]
	if !ok {
		return Session{}, false
	}
	return snapshot(chatID, e), true
}

// Clear removes the chat's session unconditionally and stops its timer.
func (m *Manager) Clear(chatID int64) {
	m.mu.Lock()
	e, ok := m.sessions[chatID]
	if ok {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(m.sessions, chatID)
	}
	m.mu.Unlock()

	if ok {
		logger.SES.Debug("session cleared",
			slog.String("event", "session.cleared"),
			slog.Int64("chat_id", chatID),
		)
	}
}

// Active returns the number of live sessions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops all timers. Pending expiry callbacks are not waited for.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.sessions {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(m.sessions, id)
	}
}

func (m *Manager) resetTimerLocked(chatID int64, e *entry) {
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(m.idleTimeout, func() {
		m.expire(chatID)
	})
}

func (m *Manager) expire(chatID int64) {
	m.mu.Lock()
	e, ok := m.sessions[chatID]
	if !ok {
		m.mu.Unlock()
		return
	}
	// A Touch may have raced the timer firing; honor the newer activity.
	if time.Since(e.lastSeen) < m.idleTimeout {
		m.mu.Unlock()
		return
	}
	snap := snapshot(chatID, e)
	delete(m.sessions, chatID)
	cb := m.OnExpire
	m.mu.Unlock()

	logger.SES.Info("session expired",
		slog.String("event", "session.expired"),
		slog.String("status", "expired"),
		slog.Int64("chat_id", chatID),
		slog.Int("field_keys", len(snap.Fields)),
	)
	if cb != nil {
		cb(snap)
	}
}

func snapshot(chatID int64, e *entry) Session {
	fields := make(map[string]string, len(e.fields))
	maps.Copy(fields, e.fields)
	return Session{
		ChatID:       chatID,
		DocumentType: e.docType,
		Fields:       fields,
		CreatedAt:    e.createdAt,
		LastActivity: e.lastSeen,
		InProgress:   e.inProgress,
	}
}
