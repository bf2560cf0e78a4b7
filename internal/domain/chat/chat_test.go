package chat

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversationTruncatesTitle(t *testing.T) {
	long := strings.Repeat("a", 80)
	c := NewConversation(uuid.New(), long)
	assert.Len(t, c.Title, 50)

	short := NewConversation(uuid.New(), "hello")
	assert.Equal(t, "hello", short.Title)
}

func TestNewConversationTruncatesOnRuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the cutoff must not be split.
	straddling := strings.Repeat("a", 49) + "éé"
	c := NewConversation(uuid.New(), straddling)
	assert.True(t, utf8.ValidString(c.Title))
	assert.Equal(t, 50, utf8.RuneCountInString(c.Title))
	assert.Equal(t, strings.Repeat("a", 49)+"é", c.Title)

	multibyte := strings.Repeat("金", 60)
	c = NewConversation(uuid.New(), multibyte)
	assert.True(t, utf8.ValidString(c.Title))
	assert.Equal(t, 50, utf8.RuneCountInString(c.Title))
}

func TestNewMessageValidation(t *testing.T) {
	_, err := NewMessage(uuid.Nil, RoleUser, "hi")
	assert.Error(t, err)

	_, err = NewMessage(uuid.New(), Role("bot"), "hi")
	assert.Error(t, err)

	_, err = NewMessage(uuid.New(), RoleUser, "")
	assert.Error(t, err)

	m, err := NewMessage(uuid.New(), RoleAssistant, "hello")
	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, m.Role)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{1, 0}, []float64{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float64{1, 0}, []float64{-3, 0}), 1e-9)
}

func TestCosineSimilarityDegenerateInputs(t *testing.T) {
	assert.Zero(t, CosineSimilarity(nil, nil))
	assert.Zero(t, CosineSimilarity([]float64{1}, []float64{1, 2}))
	assert.Zero(t, CosineSimilarity([]float64{0, 0}, []float64{1, 2}))
}
