package genai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"linguastory-backend/internal/model"
)

func TestTutorFramingTruncatesOnRuneBoundary(t *testing.T) {
	// 150 two-byte runes put a multi-byte character across the cut point.
	story := strings.Repeat("م", 150)
	framing := TutorFraming(&model.Lesson{Title: "قصة", Story: story})

	assert.True(t, utf8.ValidString(framing))
}

func TestTutorFramingKeepsShortStoriesWhole(t *testing.T) {
	framing := TutorFraming(&model.Lesson{Title: "t", Story: "a short story"})
	assert.Contains(t, framing, "a short story")
}

func TestOpeningTurnNamesTopic(t *testing.T) {
	assert.Equal(t, "Hi! Let's talk about Travel.", OpeningTurn("Travel"))
}
