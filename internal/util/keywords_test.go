package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("Can describe experiences and events, dreams, hopes and ambitions.")

	assert.Equal(t, []string{"describe", "experiences", "events", "dreams", "hopes", "ambitions"}, keywords)
}

func TestExtractKeywords_DropsStopwordsAndShortWords(t *testing.T) {
	keywords := ExtractKeywords("Can use the and or but in on at to for words")

	assert.NotContains(t, keywords, "can")
	assert.NotContains(t, keywords, "the")
	assert.NotContains(t, keywords, "use")
	assert.Contains(t, keywords, "words")
}

func TestExtractKeywords_CapsAtTenUnique(t *testing.T) {
	keywords := ExtractKeywords("alpha bravo charlie delta echoes foxtrot golfing hotels india juliet kilos lima alpha")

	assert.Len(t, keywords, 10)
	assert.Equal(t, "alpha", keywords[0])
	assert.NotContains(t, keywords, "lima")
}

func TestExtractKeywords_EmptyInput(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
}

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}
