package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_KV(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("k", "v1")
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	s.Set("k", "v2")
	v, _ = s.Get("k")
	assert.Equal(t, "v2", v)

	s.Delete("k")
	_, ok = s.Get("k")
	assert.False(t, ok)
}

func TestMemoryStore_PromoLifecycle(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()

	assert.True(t, s.ShouldShowPromo("sid", now), "fresh session sees the promo")

	s.SnoozePromo("sid", now)
	assert.False(t, s.ShouldShowPromo("sid", now.Add(time.Minute)), "snoozed within window")
	assert.True(t, s.ShouldShowPromo("sid", now.Add(PromoSnooze+time.Second)), "snooze lapses")

	s.MarkPromoSeen("sid")
	assert.False(t, s.ShouldShowPromo("sid", now.Add(time.Hour)), "seen means never again")
}
