// Package speech models the optional speech-to-text capability: single
// utterance, non-continuous, English locale.
package speech

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrUnsupported = errors.New("speech recognition is not supported on this target")

// Recognizer captures one utterance and returns its transcript. Browser
// targets back this with the Web Speech API; the server ships the
// unsupported stub.
type Recognizer interface {
	Supported() bool
	Recognize(ctx context.Context) (string, error)
}

type UnsupportedRecognizer struct{}

func (UnsupportedRecognizer) Supported() bool { return false }

func (UnsupportedRecognizer) Recognize(context.Context) (string, error) {
	return "", ErrUnsupported
}

// AppendTranscript merges a recognition result into an existing draft:
// the transcript is capitalized at its first character and space-joined
// onto a non-empty draft.
func AppendTranscript(draft, transcript string) string {
	transcript = capitalizeFirst(transcript)
	draft = strings.TrimSpace(draft)
	if draft == "" {
		return transcript
	}
	return draft + " " + transcript
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
