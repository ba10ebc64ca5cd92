package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Link(t *testing.T) {
	b := NewBuilder("+1 (555) 123-4567")

	assert.Equal(t, "https://wa.me/15551234567", b.Link(""))
	assert.Equal(t, "https://wa.me/15551234567", b.Link("   "))
	assert.Equal(t, "https://wa.me/15551234567?text=Hi%2C+I+need+a+quote", b.Link("Hi, I need a quote"))
}
