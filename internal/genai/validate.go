package genai

import (
	"errors"
	"fmt"

	"linguastory-backend/internal/model"
)

// ValidateLesson checks the structural contract of a generated lesson.
// Shape violations are mapped to ErrGeneration by the caller rather than
// trusting the provider's JSON implicitly.
func ValidateLesson(l *model.Lesson) error {
	if l == nil {
		return errors.New("nil lesson")
	}
	if l.Title == "" {
		return errors.New("missing title")
	}
	if l.Story == "" {
		return errors.New("missing story")
	}
	if l.StoryTranslation == "" {
		return errors.New("missing story translation")
	}
	if len(l.Vocabulary) == 0 {
		return errors.New("missing vocabulary")
	}
	for i, v := range l.Vocabulary {
		if v.Word == "" || v.EnglishMeaning == "" || v.ArabicMeaning == "" {
			return fmt.Errorf("incomplete vocabulary item at index %d", i)
		}
	}
	if len(l.ComprehensionQuestions) == 0 {
		return errors.New("missing comprehension questions")
	}
	if len(l.DiscussionQuestions) == 0 {
		return errors.New("missing discussion questions")
	}
	if l.WritingTask == "" {
		return errors.New("missing writing task")
	}
	return nil
}
