package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Widget Co":    "acme-widget-co",
		"  Trimmed  ":       "trimmed",
		"O'Brien & Sons":    "o-brien-sons",
		"Multiple   Spaces": "multiple-spaces",
		"Already-Slugged":   "already-slugged",
		"Trailing! ":        "trailing",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input: %q", input)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
