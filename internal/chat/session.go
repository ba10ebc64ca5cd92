package chat

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"scribewell-backend/internal/store"
)

type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// Message is one transcript entry. IDs are sequential per session and
// the list is append-only; retranslation rewrites text in place but
// never reorders or drops entries.
type Message struct {
	ID           int       `json:"id"`
	Text         string    `json:"text"`
	Sender       Sender    `json:"sender"`
	Timestamp    time.Time `json:"timestamp"`
	QuickReplies []string  `json:"quickReplies,omitempty"`
	IsError      bool      `json:"isError,omitempty"`
}

// Session is the persisted assistant state for one visitor.
type Session struct {
	Messages   []Message `json:"messages"`
	UserName   string    `json:"userName,omitempty"`
	HasGreeted bool      `json:"hasGreeted"`
	Language   string    `json:"language"`
}

// Storage key suffixes, mirroring the fixed sessionStorage constants
// the web widget uses.
const (
	keyMessages = "scribewell_chat_messages"
	keyName     = "scribewell_chat_name"
	keyGreeted  = "scribewell_chat_greeted"
	keyLanguage = "scribewell_chat_language"
)

var welcomeQuickReplies = []string{"Our services", "Pricing", "How to order"}

var greetingPhrases = []string{"hi", "hello", "hey", "hola", "bonjour", "hallo", "good morning", "good afternoon", "good evening"}

// Options tunes a Manager.
type Options struct {
	DefaultLanguage string
	// MaxHistoryTurns bounds how many prior transcript entries are sent
	// to the model per generation call.
	MaxHistoryTurns int
	// ContactLink is appended to fallback messages so a visitor can
	// escalate when generation fails (typically a wa.me deep link).
	ContactLink string
}

// Manager owns LLM-backed assistant sessions. All state mutations are
// funneled through its mutex, so a translation batch landing mid-chat
// cannot interleave with a send commit.
type Manager struct {
	kv        store.KV
	llm       Completer
	knowledge *Knowledge
	log       *logrus.Logger
	opts      Options

	mu         sync.Mutex
	awaitingN  map[string]int
	translateN map[string]int
	generation map[string]uint64
}

func NewManager(kv store.KV, llm Completer, k *Knowledge, log *logrus.Logger, opts Options) *Manager {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "en"
	}
	if opts.MaxHistoryTurns <= 0 {
		opts.MaxHistoryTurns = 10
	}
	return &Manager{
		kv:         kv,
		llm:        llm,
		knowledge:  k,
		log:        log,
		opts:       opts,
		awaitingN:  make(map[string]int),
		translateN: make(map[string]int),
		generation: make(map[string]uint64),
	}
}

// Init returns the existing session or seeds a new one with the
// canonical localized welcome message.
func (m *Manager) Init(sessionID, language string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initLocked(sessionID, language)
}

func (m *Manager) initLocked(sessionID, language string) Session {
	if s, ok := m.loadLocked(sessionID); ok {
		return s
	}
	if language == "" {
		language = m.opts.DefaultLanguage
	}
	s := Session{
		Messages: []Message{{
			ID:           1,
			Text:         m.knowledge.Welcome(language),
			Sender:       SenderBot,
			Timestamp:    time.Now(),
			QuickReplies: welcomeQuickReplies,
		}},
		HasGreeted: true,
		Language:   language,
	}
	m.saveLocked(sessionID, s)
	return s
}

// Get returns the session without creating one.
func (m *Manager) Get(sessionID string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked(sessionID)
}

// Send appends the user message, asks the model for a reply, and
// appends the result. A failed generation call never surfaces as an
// error; it becomes a single localized fallback message flagged as an
// error so the widget styles it distinctly and retranslation skips it.
func (m *Manager) Send(ctx context.Context, sessionID, text string) (Session, Message) {
	m.mu.Lock()
	s := m.initLocked(sessionID, "")
	userMsg := Message{
		ID:        len(s.Messages) + 1,
		Text:      text,
		Sender:    SenderUser,
		Timestamp: time.Now(),
	}
	s.Messages = append(s.Messages, userMsg)
	m.captureName(&s, text)
	m.saveLocked(sessionID, s)
	system := m.knowledge.SystemPrompt(s.Language)
	history := historyTurns(s.Messages[:len(s.Messages)-1], m.opts.MaxHistoryTurns)
	language := s.Language
	m.awaitingN[sessionID]++
	m.mu.Unlock()

	reply, err := m.llm.Complete(ctx, system, history, text)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.awaitingN[sessionID]--

	// The session can vanish mid-call (manual clear); reseed rather
	// than resurrecting a transcript without its welcome message.
	s, ok := m.loadLocked(sessionID)
	if !ok {
		s = m.initLocked(sessionID, language)
	}
	botMsg := Message{
		ID:        len(s.Messages) + 1,
		Sender:    SenderBot,
		Timestamp: time.Now(),
	}
	if err != nil {
		m.log.WithError(err).WithField("session", sessionID).Warn("assistant generation failed")
		fb := m.knowledge.Fallback(language)
		if m.opts.ContactLink != "" {
			fb += " " + m.opts.ContactLink
		}
		botMsg.Text = fb
		botMsg.IsError = true
	} else {
		botMsg.Text = reply
	}
	s.Messages = append(s.Messages, botMsg)
	m.saveLocked(sessionID, s)
	return s, botMsg
}

// SetLanguage records the new UI language and retranslates the stored
// transcript. One translation request is issued per non-error bot
// message and they are joined before the rewritten transcript commits,
// so a half-translated state is never persisted. The first message is
// replaced with the canonical welcome for the new language instead of
// being machine translated. A batch that loses the generation race to a
// newer language switch is discarded.
func (m *Manager) SetLanguage(ctx context.Context, sessionID, language string) Session {
	m.mu.Lock()
	s, ok := m.loadLocked(sessionID)
	if !ok {
		s = m.initLocked(sessionID, language)
		m.mu.Unlock()
		return s
	}
	s.Language = language
	m.saveLocked(sessionID, s)
	if len(s.Messages) == 0 {
		m.mu.Unlock()
		return s
	}
	m.generation[sessionID]++
	gen := m.generation[sessionID]
	snapshot := append([]Message(nil), s.Messages...)
	m.translateN[sessionID]++
	m.mu.Unlock()

	translated := make([]string, len(snapshot))
	replace := make([]bool, len(snapshot))
	var wg sync.WaitGroup
	for i, msg := range snapshot {
		if msg.Sender != SenderBot || msg.IsError {
			continue
		}
		if i == 0 {
			translated[i] = m.knowledge.Welcome(language)
			replace[i] = true
			continue
		}
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			out, err := m.llm.Translate(ctx, text, language)
			if err != nil {
				// Keep the original-language text; one failure must not
				// abort the batch.
				m.log.WithError(err).WithField("session", sessionID).Warn("message translation failed")
				return
			}
			translated[i] = out
			replace[i] = true
		}(i, msg.Text)
	}
	wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.translateN[sessionID]--
	cur, _ := m.loadLocked(sessionID)
	if m.generation[sessionID] != gen {
		return cur
	}
	for i := range snapshot {
		if !replace[i] {
			continue
		}
		for j := range cur.Messages {
			if cur.Messages[j].ID == snapshot[i].ID {
				cur.Messages[j].Text = translated[i]
				break
			}
		}
	}
	m.saveLocked(sessionID, cur)
	return cur
}

// Clear wipes every stored key for the session. The next Init reseeds
// the welcome message.
func (m *Manager) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv.Delete(sessionID + ":" + keyMessages)
	m.kv.Delete(sessionID + ":" + keyName)
	m.kv.Delete(sessionID + ":" + keyGreeted)
	m.kv.Delete(sessionID + ":" + keyLanguage)
	m.generation[sessionID]++
}

// Awaiting reports whether a generation call is in flight for the
// session.
func (m *Manager) Awaiting(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.awaitingN[sessionID] > 0
}

// Translating reports whether a retranslation batch is in flight.
func (m *Manager) Translating(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.translateN[sessionID] > 0
}

// captureName grabs the visitor's name from the first user message that
// is not a greeting and is longer than two characters. Once set it is
// never re-evaluated.
func (m *Manager) captureName(s *Session, text string) {
	if s.UserName != "" {
		return
	}
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= 2 || isGreeting(strings.ToLower(trimmed)) {
		return
	}
	s.UserName = trimmed
}

// isGreeting matches greeting phrases on word boundaries, so names
// that merely contain one ("Sophia") are not swallowed.
func isGreeting(lower string) bool {
	for _, g := range greetingPhrases {
		if !strings.HasPrefix(lower, g) {
			continue
		}
		if len(lower) == len(g) || !isWordChar(lower[len(g)]) {
			return true
		}
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

func historyTurns(msgs []Message, max int) []Turn {
	if len(msgs) > max {
		msgs = msgs[len(msgs)-max:]
	}
	turns := make([]Turn, 0, len(msgs))
	for _, msg := range msgs {
		role := "user"
		if msg.Sender == SenderBot {
			role = "assistant"
		}
		turns = append(turns, Turn{Role: role, Text: msg.Text})
	}
	return turns
}

func (m *Manager) loadLocked(sessionID string) (Session, bool) {
	raw, ok := m.kv.Get(sessionID + ":" + keyMessages)
	if !ok {
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s.Messages); err != nil {
		m.log.WithError(err).WithField("session", sessionID).Error("corrupt transcript, resetting")
		return Session{}, false
	}
	s.UserName, _ = m.kv.Get(sessionID + ":" + keyName)
	greeted, _ := m.kv.Get(sessionID + ":" + keyGreeted)
	s.HasGreeted = greeted == "true"
	s.Language, _ = m.kv.Get(sessionID + ":" + keyLanguage)
	if s.Language == "" {
		s.Language = m.opts.DefaultLanguage
	}
	return s, true
}

func (m *Manager) saveLocked(sessionID string, s Session) {
	b, err := json.Marshal(s.Messages)
	if err != nil {
		m.log.WithError(err).WithField("session", sessionID).Error("failed to serialize transcript")
		return
	}
	m.kv.Set(sessionID+":"+keyMessages, string(b))
	m.kv.Set(sessionID+":"+keyName, s.UserName)
	greeted := "false"
	if s.HasGreeted {
		greeted = "true"
	}
	m.kv.Set(sessionID+":"+keyGreeted, greeted)
	m.kv.Set(sessionID+":"+keyLanguage, s.Language)
}
