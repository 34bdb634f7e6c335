package model

import "time"

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"password,omitempty"` // Exclude from JSON responses
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnglishLevel is a CEFR level supported by the lesson generator.
type EnglishLevel string

const (
	LevelA1 EnglishLevel = "A1"
	LevelA2 EnglishLevel = "A2"
	LevelB1 EnglishLevel = "B1"
	LevelB2 EnglishLevel = "B2"
	LevelC1 EnglishLevel = "C1"
)

var Levels = []EnglishLevel{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1}

func (l EnglishLevel) Valid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

type LessonLength string

const (
	LengthShort  LessonLength = "Short (100-150 words)"
	LengthMedium LessonLength = "Medium (150-250 words)"
	LengthLong   LessonLength = "Long (250-400 words)"
)

type VocabularyItem struct {
	Word           string `json:"word"`
	EnglishMeaning string `json:"englishMeaning"`
	ArabicMeaning  string `json:"arabicMeaning"`
}

// Lesson is the structured content returned by the generative provider.
// Immutable once produced; persisted only through the history log.
type Lesson struct {
	Title                  string           `json:"title"`
	Story                  string           `json:"story"`
	StoryTranslation       string           `json:"storyTranslation"`
	Vocabulary             []VocabularyItem `json:"vocabulary"`
	ComprehensionQuestions []string         `json:"comprehensionQuestions"`
	DiscussionQuestions    []string         `json:"discussionQuestions"`
	WritingTask            string           `json:"writingTask"`
}

// LessonParams is the request that produces a Lesson.
type LessonParams struct {
	Level   EnglishLevel `json:"level"`
	Genre   string       `json:"genre"`
	Topic   string       `json:"topic"`
	Grammar string       `json:"grammar"`
	Length  LessonLength `json:"length"`
}

type ConversationParams struct {
	Topic string       `json:"topic"`
	Level EnglishLevel `json:"level"`
}

// BilingualText carries English and Arabic renderings of the same label.
type BilingualText struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

type CurriculumLesson struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Level   EnglishLevel `json:"level"`
	Topic   string       `json:"topic"`
	Grammar string       `json:"grammar"`
}

type CurriculumLevel struct {
	ID                string             `json:"id"`
	Title             BilingualText      `json:"title"`
	Description       BilingualText      `json:"description"`
	EnglishLevelRange []EnglishLevel     `json:"englishLevelRange"`
	Lessons           []CurriculumLesson `json:"lessons"`
}

// UserProgress tracks completed curriculum lessons and unlocked levels.
// The first level is always unlocked; later levels unlock only once every
// lesson of the previous level has been completed.
type UserProgress struct {
	CompletedLessonIDs []string `json:"completedLessonIds"`
	UnlockedLevelIDs   []string `json:"unlockedLevelIds"`
}

func (p UserProgress) Completed(lessonID string) bool {
	for _, id := range p.CompletedLessonIDs {
		if id == lessonID {
			return true
		}
	}
	return false
}

func (p UserProgress) Unlocked(levelID string) bool {
	for _, id := range p.UnlockedLevelIDs {
		if id == levelID {
			return true
		}
	}
	return false
}

type HistoryItem struct {
	ID        string       `json:"id"`
	Timestamp int64        `json:"timestamp"`
	Lesson    Lesson       `json:"lesson"`
	Params    LessonParams `json:"params"`
}

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage lives only for the duration of a chat session.
type ChatMessage struct {
	ID        string   `json:"id"`
	Role      ChatRole `json:"role"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"`
}
