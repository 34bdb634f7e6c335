package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"linguastory-backend/internal/model"
)

func completeLesson() model.Lesson {
	return model.Lesson{
		Title:                  "t",
		Story:                  "s",
		StoryTranslation:       "st",
		Vocabulary:             []model.VocabularyItem{{Word: "w", EnglishMeaning: "em", ArabicMeaning: "am"}},
		ComprehensionQuestions: []string{"q1"},
		DiscussionQuestions:    []string{"d1"},
		WritingTask:            "write",
	}
}

func TestValidateLessonAcceptsCompleteLesson(t *testing.T) {
	lesson := completeLesson()
	assert.NoError(t, ValidateLesson(&lesson))
}

func TestValidateLessonRejectsMissingFields(t *testing.T) {
	mutations := map[string]func(*model.Lesson){
		"title":         func(l *model.Lesson) { l.Title = "" },
		"story":         func(l *model.Lesson) { l.Story = "" },
		"translation":   func(l *model.Lesson) { l.StoryTranslation = "" },
		"vocabulary":    func(l *model.Lesson) { l.Vocabulary = nil },
		"comprehension": func(l *model.Lesson) { l.ComprehensionQuestions = nil },
		"discussion":    func(l *model.Lesson) { l.DiscussionQuestions = nil },
		"writing task":  func(l *model.Lesson) { l.WritingTask = "" },
		"vocab word":    func(l *model.Lesson) { l.Vocabulary[0].Word = "" },
		"vocab english": func(l *model.Lesson) { l.Vocabulary[0].EnglishMeaning = "" },
		"vocab arabic":  func(l *model.Lesson) { l.Vocabulary[0].ArabicMeaning = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			lesson := completeLesson()
			mutate(&lesson)
			assert.Error(t, ValidateLesson(&lesson))
		})
	}
}
