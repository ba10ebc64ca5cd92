package assistant

import "strings"

// Stage is the coarse phase of the scripted dialogue. Transitions are
// keyword-triggered, not strictly ordered, but the intended flow is
// greeting -> service_inquiry -> details/quote -> general.
type Stage string

const (
	StageGreeting       Stage = "greeting"
	StageServiceInquiry Stage = "service_inquiry"
	StageDetails        Stage = "details"
	StageQuote          Stage = "quote"
	StageGeneral        Stage = "general"
)

// Context is the per-widget conversation state. It lives for one page
// view; the caller keeps it between turns and discards it on reload.
type Context struct {
	Stage           Stage  `json:"stage"`
	UserName        string `json:"userName,omitempty"`
	SelectedService string `json:"selectedService,omitempty"`
	Budget          string `json:"budget,omitempty"`
}

// NewContext returns the initial widget state.
func NewContext() Context {
	return Context{Stage: StageGreeting}
}

// Reply is a single scripted bot turn. TypingDelayMs is advisory; the
// widget waits that long before showing the text to simulate typing.
type Reply struct {
	Text          string   `json:"text"`
	QuickReplies  []string `json:"quickReplies,omitempty"`
	TypingDelayMs int      `json:"typingDelayMs"`
	Context       Context  `json:"context"`
}

var serviceOptions = []string{
	"Essay Writing",
	"Thesis Writing",
	"Dissertation",
	"Research Paper",
	"Editing & Proofreading",
	"Plagiarism Removal",
}

var subjectOptions = []string{"Medicine", "Law", "Engineering", "Computer Science", "Mathematics", "Other"}

var levelDeadlineOptions = []string{"High School", "Undergraduate", "Graduate", "PhD", "24 hours", "1 week"}

var genericOptions = []string{"Our services", "Pricing", "How to order", "Talk to the team"}

var greetingWords = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "greetings"}

// rule pairs a predicate with its handler. Rules are evaluated top to
// bottom against the lower-cased utterance; first match wins.
type rule struct {
	match  func(m string, ctx Context) bool
	handle func(raw, m string, ctx Context) Reply
}

var rules = []rule{
	{
		match: func(m string, ctx Context) bool { return ctx.Stage == StageGreeting },
		handle: func(raw, m string, ctx Context) Reply {
			if isGreeting(m) || len(strings.TrimSpace(m)) < 3 {
				return reply("Hello! Welcome to Scribewell. I'm here to help with your academic writing needs. What's your name?", nil, ctx)
			}
			ctx.UserName = strings.TrimSpace(raw)
			ctx.Stage = StageServiceInquiry
			return reply("Nice to meet you, "+ctx.UserName+"! How can I help you today?", genericOptions, ctx)
		},
	},
	{
		match: func(m string, ctx Context) bool {
			return containsAny(m, []string{"service", "offer", "tell me about"})
		},
		handle: func(raw, m string, ctx Context) Reply {
			ctx.Stage = StageDetails
			return reply("We cover the full academic writing spectrum: essays, theses, dissertations, research papers, editing and proofreading, and plagiarism removal. Which one are you interested in?", serviceOptions, ctx)
		},
	},
	{
		match: func(m string, ctx Context) bool {
			return containsAny(m, []string{"price", "cost", "how much", "pricing"})
		},
		handle: func(raw, m string, ctx Context) Reply {
			ctx.Stage = StageQuote
			return reply("Pricing depends on the service, academic level, page count, and deadline. As a guide: high school starts at 300 per page and PhD at 875, with rush deadlines adding up to 50%. Tell me which service you need and I can be more specific.", serviceOptions, ctx)
		},
	},
	{
		match: func(m string, ctx Context) bool {
			return containsAny(m, []string{"order", "place", "buy", "how do i"})
		},
		handle: func(raw, m string, ctx Context) Reply {
			return reply("Ordering is simple: pick a service, fill in your requirements on the order form, get an instant quote, and confirm. A writer is assigned within the hour. What subject is your work in?", subjectOptions, ctx)
		},
	},
	{
		match: func(m string, ctx Context) bool {
			return containsAny(m, []string{"free", "complimentary"})
		},
		handle: func(raw, m string, ctx Context) Reply {
			return reply("Every order includes a free plagiarism report, free formatting in any citation style, free revisions for 14 days, and a free title page.", nil, ctx)
		},
	},
	{
		match: func(m string, ctx Context) bool {
			return containsAny(m, []string{"discount", "deal"})
		},
		handle: func(raw, m string, ctx Context) Reply {
			return reply("New customers get 15% off their first order, and orders over 10 pages carry an automatic bulk discount. Seasonal promotions are announced on the pricing page.", nil, ctx)
		},
	},
	{
		match: func(m string, ctx Context) bool { return matchedService(m) != "" },
		handle: func(raw, m string, ctx Context) Reply {
			ctx.SelectedService = matchedService(m)
			ctx.Stage = StageQuote
			return reply("Great choice! For "+ctx.SelectedService+" I need three things to quote you: how many pages, your deadline, and your academic level. Or I can connect you with our team right away.", []string{"Connect me", "It's urgent", "Tell me prices"}, ctx)
		},
	},
	{
		match: func(m string, ctx Context) bool {
			return containsAny(m, []string{"connect", "contact", "team", "yes"})
		},
		handle: func(raw, m string, ctx Context) Reply {
			return reply("Absolutely! Head over to our contact page and the team will get back to you within a few hours. You can also reach us on WhatsApp for anything urgent.", nil, ctx)
		},
	},
	{
		match: func(m string, ctx Context) bool {
			return containsAny(m, []string{"high school", "undergraduate", "graduate", "phd", "bachelor", "master", "urgent", "deadline", "asap", "hours"})
		},
		handle: func(raw, m string, ctx Context) Reply {
			return reply("Got it. The academic level and deadline drive the price, so pick the ones that match your assignment and I'll narrow it down.", levelDeadlineOptions, ctx)
		},
	},
}

// Respond evaluates the utterance against the rule list and returns the
// scripted turn. The default branch guarantees a reply for every input,
// including the empty string.
func Respond(utterance string, ctx Context) Reply {
	m := strings.ToLower(strings.TrimSpace(utterance))
	for _, r := range rules {
		if r.match(m, ctx) {
			return r.handle(utterance, m, ctx)
		}
	}
	text := "I can help with services, pricing, ordering, or put you in touch with our team. What would you like to know?"
	if ctx.UserName != "" {
		text = ctx.UserName + ", I can help with services, pricing, ordering, or put you in touch with our team. What would you like to know?"
	}
	return reply(text, genericOptions, ctx)
}

func reply(text string, quickReplies []string, ctx Context) Reply {
	return Reply{
		Text:          text,
		QuickReplies:  quickReplies,
		TypingDelayMs: typingDelay(text),
		Context:       ctx,
	}
}

// typingDelay maps reply length onto a 1-2s simulated typing pause.
func typingDelay(text string) int {
	d := 1000 + len(text)*5
	if d > 2000 {
		d = 2000
	}
	return d
}

func matchedService(m string) string {
	for _, s := range serviceOptions {
		if strings.Contains(m, strings.ToLower(s)) {
			return s
		}
	}
	// Accept bare keywords too, so "I need a thesis" matches.
	for _, kw := range []string{"essay", "thesis", "dissertation", "research paper", "editing", "proofreading", "plagiarism"} {
		if strings.Contains(m, kw) {
			for _, s := range serviceOptions {
				if strings.Contains(strings.ToLower(s), kw) {
					return s
				}
			}
		}
	}
	return ""
}

// isGreeting matches greeting words on word boundaries, so a name that
// merely contains one ("Sophia") is still treated as a name.
func isGreeting(m string) bool {
	for _, g := range greetingWords {
		if !strings.HasPrefix(m, g) {
			continue
		}
		if len(m) == len(g) || !isWordChar(m[len(g)]) {
			return true
		}
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
