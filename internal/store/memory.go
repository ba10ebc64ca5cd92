package store

import (
	"sync"
	"time"
)

// KV is the narrow storage port the assistant persists through. The
// production server uses the in-memory implementation below; tests swap
// in the same type, which keeps the assistant logic storage-agnostic.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// PromoSnooze is how long a dismissed promo popup stays hidden.
const PromoSnooze = 10 * time.Minute

type promoState struct {
	Seen         bool
	SnoozedUntil time.Time
}

// MemoryStore is a mutex-guarded in-process store. Chat session state
// is serialized into the flat key-value map; promo popup flags keep
// their own per-session bucket with timestamp-based expiry.
type MemoryStore struct {
	mu             sync.RWMutex
	values         map[string]string
	promoBySession map[string]promoState
}

var _ KV = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:         make(map[string]string),
		promoBySession: make(map[string]promoState),
	}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Promo helpers

// MarkPromoSeen records that a session has been shown the promo popup.
func (m *MemoryStore) MarkPromoSeen(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.promoBySession[sessionID]
	p.Seen = true
	m.promoBySession[sessionID] = p
}

// SnoozePromo hides the promo for the session until the snooze lapses.
func (m *MemoryStore) SnoozePromo(sessionID string, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.promoBySession[sessionID]
	p.SnoozedUntil = now.Add(PromoSnooze)
	m.promoBySession[sessionID] = p
}

// ShouldShowPromo reports whether the promo popup should render for the
// session: never while snoozed, and only once after that.
func (m *MemoryStore) ShouldShowPromo(sessionID string, now time.Time) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.promoBySession[sessionID]
	if !ok {
		return true
	}
	if now.Before(p.SnoozedUntil) {
		return false
	}
	return !p.Seen
}
