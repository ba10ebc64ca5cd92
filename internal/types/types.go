package types

import (
	"scribewell-backend/internal/assistant"
	"scribewell-backend/internal/chat"
	"scribewell-backend/internal/pricing"
)

type QuoteResponse struct {
	Price int `json:"price"`
}

// QuoteRequest is the pricing form payload; it maps one-to-one onto
// the engine's input.
type QuoteRequest = pricing.Quote

type ScriptedChatRequest struct {
	Message string            `json:"message"`
	Context assistant.Context `json:"context"`
}

type ChatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

type ChatResponse struct {
	SessionID   string         `json:"sessionId"`
	Reply       chat.Message   `json:"reply"`
	Messages    []chat.Message `json:"messages"`
	Translating bool           `json:"translating"`
}

type LanguageRequest struct {
	Language string `json:"language"`
}

type SessionResponse struct {
	SessionID   string         `json:"sessionId"`
	Messages    []chat.Message `json:"messages"`
	UserName    string         `json:"userName,omitempty"`
	Language    string         `json:"language"`
	Translating bool           `json:"translating"`
	Awaiting    bool           `json:"awaiting"`
}

type PromoResponse struct {
	Show bool `json:"show"`
}

type PromoRequest struct {
	// Action is "seen" or "snooze".
	Action string `json:"action"`
}

type WhatsAppLinkResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
