package whatsapp

import (
	"net/url"
	"strings"
)

// Builder constructs wa.me deep links for a fixed company number.
type Builder struct {
	number string
}

// NewBuilder accepts the number in international format; anything that
// is not a digit is stripped.
func NewBuilder(number string) *Builder {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return &Builder{number: digits.String()}
}

// Link returns a deep link that opens a chat with the company number,
// optionally pre-filled with text.
func (b *Builder) Link(text string) string {
	u := url.URL{Scheme: "https", Host: "wa.me", Path: "/" + b.number}
	if strings.TrimSpace(text) != "" {
		q := url.Values{}
		q.Set("text", text)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
