package genai

import "errors"

// Failure taxonomy for provider calls. Translation is the exception: it is
// best-effort and reports failure through a sentinel string instead.
var (
	ErrGeneration      = errors.New("lesson generation failed")
	ErrChatTransport   = errors.New("chat transport failed")
	ErrSpeechSynthesis = errors.New("speech synthesis failed")
)

// TranslationFailedSentinel is returned in place of a translation whenever
// the provider call fails. Callers render it as-is.
const TranslationFailedSentinel = "Error translating text."
