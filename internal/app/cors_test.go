package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"limmud.app", "*.limmud.app", "localhost:*"}

	assert.True(t, originAllowed(patterns, "https://limmud.app"))
	assert.True(t, originAllowed(patterns, "https://study.limmud.app"))
	assert.True(t, originAllowed(patterns, "http://localhost:5173"))
	assert.True(t, originAllowed(patterns, "https://LIMMUD.APP"))
	assert.False(t, originAllowed(patterns, "https://limmud.app.evil.com"))
	assert.False(t, originAllowed(patterns, "https://example.com"))
	assert.False(t, originAllowed(nil, "https://limmud.app"))
}
