package speech

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedRecognizer(t *testing.T) {
	r := UnsupportedRecognizer{}

	assert.False(t, r.Supported())

	_, err := r.Recognize(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestAppendTranscript(t *testing.T) {
	cases := []struct {
		name       string
		draft      string
		transcript string
		want       string
	}{
		{"empty draft", "", "hello there", "Hello there"},
		{"joins with space", "I went home", "and slept", "I went home And slept"},
		{"trims draft whitespace", "draft text   ", "more words", "draft text More words"},
		{"whitespace-only draft", "   ", "hello", "Hello"},
		{"empty transcript", "draft", "", "draft "},
		{"already capitalized", "", "Hello", "Hello"},
		{"multibyte first rune", "", "égalité now", "Égalité now"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AppendTranscript(tc.draft, tc.transcript))
		})
	}
}
