package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribewell-backend/internal/store"
)

type fakeCompleter struct {
	mu          sync.Mutex
	completeFn  func(system string, history []Turn, user string) (string, error)
	translateFn func(text, language string) (string, error)
	histories   [][]Turn
}

func (f *fakeCompleter) Complete(_ context.Context, system string, history []Turn, user string) (string, error) {
	f.mu.Lock()
	f.histories = append(f.histories, history)
	f.mu.Unlock()
	if f.completeFn != nil {
		return f.completeFn(system, history, user)
	}
	return "ok: " + user, nil
}

func (f *fakeCompleter) Translate(_ context.Context, text, language string) (string, error) {
	if f.translateFn != nil {
		return f.translateFn(text, language)
	}
	return "[" + language + "] " + text, nil
}

func testKnowledge() *Knowledge {
	return &Knowledge{
		Company:  "Scribewell",
		Services: []string{"essays", "theses"},
		Pricing:  "per page",
		Languages: map[string]LanguagePack{
			"en": {Welcome: "welcome-en", Fallback: "fallback-en"},
			"es": {Welcome: "welcome-es", Fallback: "fallback-es"},
			"fr": {Welcome: "welcome-fr", Fallback: "fallback-fr"},
		},
	}
}

func newTestManager(llm Completer, opts Options) *Manager {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewManager(store.NewMemoryStore(), llm, testKnowledge(), log, opts)
}

func TestManager_InitSeedsWelcome(t *testing.T) {
	m := newTestManager(&fakeCompleter{}, Options{})

	s := m.Init("sid", "")
	require.Len(t, s.Messages, 1)
	assert.Equal(t, 1, s.Messages[0].ID)
	assert.Equal(t, "welcome-en", s.Messages[0].Text)
	assert.Equal(t, SenderBot, s.Messages[0].Sender)
	assert.True(t, s.HasGreeted)

	// Re-init is a no-op.
	again := m.Init("sid", "es")
	assert.Len(t, again.Messages, 1)
	assert.Equal(t, "en", again.Language)
}

func TestManager_SendAppendsUserAndBot(t *testing.T) {
	m := newTestManager(&fakeCompleter{}, Options{})

	s, bot := m.Send(context.Background(), "sid", "what do you charge?")
	require.Len(t, s.Messages, 3)
	assert.Equal(t, SenderUser, s.Messages[1].Sender)
	assert.Equal(t, "what do you charge?", s.Messages[1].Text)
	assert.Equal(t, "ok: what do you charge?", bot.Text)
	assert.False(t, bot.IsError)
	assert.Equal(t, []int{1, 2, 3}, []int{s.Messages[0].ID, s.Messages[1].ID, s.Messages[2].ID})
}

func TestManager_SendFailureAppendsSingleFallback(t *testing.T) {
	llm := &fakeCompleter{completeFn: func(string, []Turn, string) (string, error) {
		return "", errors.New("upstream down")
	}}
	m := newTestManager(llm, Options{ContactLink: "https://wa.me/15551234567"})

	s, bot := m.Send(context.Background(), "sid", "anyone there?")
	require.Len(t, s.Messages, 3, "exactly one bot message appended")
	assert.True(t, bot.IsError)
	assert.Equal(t, "fallback-en https://wa.me/15551234567", bot.Text)
}

func TestManager_NameCapture(t *testing.T) {
	m := newTestManager(&fakeCompleter{}, Options{})

	s, _ := m.Send(context.Background(), "sid", "hello!")
	assert.Empty(t, s.UserName, "greetings are not names")

	s, _ = m.Send(context.Background(), "sid", "ok")
	assert.Empty(t, s.UserName, "too short to be a name")

	s, _ = m.Send(context.Background(), "sid", "Maria")
	assert.Equal(t, "Maria", s.UserName)

	s2, _ := m.Send(context.Background(), "sid-2", "Sophia")
	assert.Equal(t, "Sophia", s2.UserName, "a name containing a greeting word is still a name")

	s, _ = m.Send(context.Background(), "sid", "Roberto")
	assert.Equal(t, "Maria", s.UserName, "capture is one-shot")
}

func TestManager_SendBoundsHistory(t *testing.T) {
	llm := &fakeCompleter{}
	m := newTestManager(llm, Options{MaxHistoryTurns: 4})

	for i := 0; i < 8; i++ {
		m.Send(context.Background(), "sid", fmt.Sprintf("message %d", i))
	}
	last := llm.histories[len(llm.histories)-1]
	assert.LessOrEqual(t, len(last), 4)
}

func TestManager_SetLanguageRetranslates(t *testing.T) {
	llm := &fakeCompleter{}
	m := newTestManager(llm, Options{})

	m.Send(context.Background(), "sid", "how fast can you deliver?")
	// Force one error-flagged message into the transcript.
	llm.completeFn = func(string, []Turn, string) (string, error) { return "", errors.New("boom") }
	m.Send(context.Background(), "sid", "and revisions?")
	llm.completeFn = nil

	s := m.SetLanguage(context.Background(), "sid", "es")
	require.Len(t, s.Messages, 5)

	assert.Equal(t, "welcome-es", s.Messages[0].Text, "first message pinned to canonical welcome")
	assert.Equal(t, "how fast can you deliver?", s.Messages[1].Text, "user messages untouched")
	assert.Equal(t, "[es] ok: how fast can you deliver?", s.Messages[2].Text)
	assert.Equal(t, "and revisions?", s.Messages[3].Text)
	assert.Equal(t, "fallback-en", s.Messages[4].Text, "error messages excluded from retranslation")
	assert.Equal(t, "es", s.Language)
	assert.False(t, m.Translating("sid"))
}

func TestManager_TranslationFailureKeepsOriginalText(t *testing.T) {
	llm := &fakeCompleter{translateFn: func(text, language string) (string, error) {
		if strings.Contains(text, "second") {
			return "", errors.New("translate failed")
		}
		return "[" + language + "] " + text, nil
	}}
	m := newTestManager(llm, Options{})

	llm.completeFn = func(_ string, _ []Turn, user string) (string, error) { return "reply to " + user, nil }
	m.Send(context.Background(), "sid", "first")
	m.Send(context.Background(), "sid", "second")

	s := m.SetLanguage(context.Background(), "sid", "fr")
	require.Len(t, s.Messages, 5)
	assert.Equal(t, "[fr] reply to first", s.Messages[2].Text)
	assert.Equal(t, "reply to second", s.Messages[4].Text, "failed translation keeps original")
}

func TestManager_StaleTranslationBatchIsDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	llm := &fakeCompleter{translateFn: func(text, language string) (string, error) {
		if language == "es" {
			close(entered)
			<-release
		}
		return "[" + language + "] " + text, nil
	}}
	m := newTestManager(llm, Options{})
	m.Send(context.Background(), "sid", "question")

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.SetLanguage(context.Background(), "sid", "es")
	}()
	<-entered
	assert.True(t, m.Translating("sid"))

	// Second switch lands while the first batch is still in flight.
	s := m.SetLanguage(context.Background(), "sid", "fr")
	assert.Equal(t, "welcome-fr", s.Messages[0].Text)

	close(release)
	<-done

	final, ok := m.Get("sid")
	require.True(t, ok)
	assert.Equal(t, "welcome-fr", final.Messages[0].Text, "stale es batch must not overwrite fr transcript")
	assert.Equal(t, "[fr] ok: question", final.Messages[2].Text)
	assert.Equal(t, "fr", final.Language)
}

func TestManager_ClearResetsEverything(t *testing.T) {
	m := newTestManager(&fakeCompleter{}, Options{})

	m.Send(context.Background(), "sid", "Maria")
	m.Clear("sid")

	_, ok := m.Get("sid")
	assert.False(t, ok)

	s := m.Init("sid", "")
	require.Len(t, s.Messages, 1)
	assert.Equal(t, "welcome-en", s.Messages[0].Text)
	assert.Empty(t, s.UserName)
}

func TestManager_AwaitingFlag(t *testing.T) {
	blocked := make(chan struct{})
	release := make(chan struct{})
	llm := &fakeCompleter{completeFn: func(string, []Turn, string) (string, error) {
		close(blocked)
		<-release
		return "done", nil
	}}
	m := newTestManager(llm, Options{})

	go m.Send(context.Background(), "sid", "slow one")
	<-blocked
	assert.True(t, m.Awaiting("sid"))
	close(release)

	deadline := time.After(2 * time.Second)
	for m.Awaiting("sid") {
		select {
		case <-deadline:
			t.Fatal("awaiting flag never cleared")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
