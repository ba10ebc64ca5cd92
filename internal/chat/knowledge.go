package chat

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LanguagePack holds the canned strings for one UI language. The
// welcome line is always rendered from here rather than machine
// translated, so the greeting stays stable across language switches.
type LanguagePack struct {
	Welcome  string `yaml:"welcome"`
	Fallback string `yaml:"fallback"`
}

// Knowledge is the company knowledge base embedded into the assistant's
// system prompt, loaded from prompts/knowledge.yaml.
type Knowledge struct {
	Company        string                  `yaml:"company"`
	Services       []string                `yaml:"services"`
	Pricing        string                  `yaml:"pricing"`
	Discounts      string                  `yaml:"discounts"`
	PaymentMethods []string                `yaml:"payment_methods"`
	OrderingSteps  []string                `yaml:"ordering_steps"`
	Languages      map[string]LanguagePack `yaml:"languages"`
}

func LoadKnowledge(path string) (*Knowledge, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var k Knowledge
	if err := yaml.Unmarshal(b, &k); err != nil {
		return nil, err
	}
	if len(k.Languages) == 0 {
		return nil, fmt.Errorf("knowledge file %s defines no languages", path)
	}
	return &k, nil
}

// SystemPrompt renders the knowledge base plus the language directive
// for one generation call.
func (k *Knowledge) SystemPrompt(language string) string {
	var b strings.Builder
	b.WriteString("You are the support assistant for ")
	b.WriteString(k.Company)
	b.WriteString(", an academic writing service. Answer questions about the company using only the facts below. Be concise and friendly.\n\n")
	b.WriteString("Services: ")
	b.WriteString(strings.Join(k.Services, ", "))
	b.WriteString("\nPricing: ")
	b.WriteString(k.Pricing)
	b.WriteString("\nDiscounts: ")
	b.WriteString(k.Discounts)
	b.WriteString("\nPayment methods: ")
	b.WriteString(strings.Join(k.PaymentMethods, ", "))
	b.WriteString("\nHow to order: ")
	b.WriteString(strings.Join(k.OrderingSteps, "; "))
	fmt.Fprintf(&b, "\n\nRespond only in the language with code %q, regardless of the language the user writes in.", language)
	return b.String()
}

// Welcome returns the canonical localized welcome line, falling back to
// English when the language has no pack.
func (k *Knowledge) Welcome(language string) string {
	return k.pack(language).Welcome
}

// Fallback returns the localized failure message shown when a
// generation call fails.
func (k *Knowledge) Fallback(language string) string {
	return k.pack(language).Fallback
}

func (k *Knowledge) pack(language string) LanguagePack {
	if p, ok := k.Languages[language]; ok {
		return p
	}
	return k.Languages["en"]
}
