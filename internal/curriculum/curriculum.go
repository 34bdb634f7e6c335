// Package curriculum holds the static course catalogue: three levels of
// seventy lessons each, generated at process start and never mutated.
package curriculum

import (
	"fmt"

	"linguastory-backend/internal/model"
)

var Genres = []string{
	"Daily Life",
	"Travel",
	"Work & Business",
	"Fantasy",
	"Sci-Fi",
	"Mystery",
	"Adventure",
}

var TopicsByGenre = map[string][]string{
	"Daily Life": {
		"Morning routine", "Grocery shopping", "Cooking dinner",
		"Weekend plans", "Ordering food", "Meeting a new friend",
	},
	"Travel": {
		"At the airport", "Checking into a hotel", "Asking for directions",
		"Sightseeing in a city", "Missing a train",
	},
	"Work & Business": {
		"First day at work", "Job interview", "Writing an email",
		"Meeting a client", "Giving a presentation",
	},
	"Fantasy": {
		"A magical forest", "The dragon's cave", "A wizard's spell",
		"The hidden kingdom", "Talking animals",
	},
	"Sci-Fi": {
		"Space travel", "Robots and AI", "Time machine",
		"Life on Mars", "A technological breakthrough",
	},
	"Mystery": {
		"The missing key", "A strange message", "The secret room",
		"A rainy night", "The lost artifact",
	},
	"Adventure": {
		"Climbing a mountain", "Lost in the jungle", "Sailing across the ocean",
		"Desert expedition", "Camping in the wild",
	},
}

var GrammarValues = []string{
	"Present Simple",
	"Past Simple",
	"Present Perfect",
	"Future with Will/Going to",
	"Conditionals (1st & 2nd)",
	"Passive Voice",
}

const LessonsPerLevel = 70

var level1Topics = []string{
	"Greetings", "Family", "Numbers", "Colors", "Food", "Daily Routine",
	"House", "City", "Jobs", "Weather", "Clothing", "Time", "Days",
	"Months", "Transport",
}

var level1Grammar = []string{
	"Verb To Be", "Present Simple", "Pronouns", "There is/are", "Can/Can't",
	"Imperatives", "Possessives", "Present Continuous",
}

var level2Topics = []string{
	"Travel", "Health", "Technology", "Culture", "Environment", "Shopping",
	"Education", "Relationships", "Hobbies", "Media", "Sports",
	"Entertainment", "Music", "History", "Science",
}

var level2Grammar = []string{
	"Past Simple", "Present Perfect", "Future with Will", "Comparatives",
	"Modal Verbs", "Past Continuous", "First Conditional", "Used to",
}

var level3Topics = []string{
	"Global Issues", "Business", "Politics", "Psychology", "Arts",
	"Philosophy", "Economics", "Literature", "Innovation", "Law",
	"Medicine", "Space", "Ethics", "Sociology", "Architecture",
}

var level3Grammar = []string{
	"Present Perfect Continuous", "Second Conditional", "Third Conditional",
	"Passive Voice", "Reported Speech", "Future Perfect",
	"Mixed Conditionals", "Inversion",
}

var levels = []model.CurriculumLevel{
	{
		ID:    "lvl1",
		Title: model.BilingualText{En: "Level 1 – Beginner", Ar: "المستوى 1 – مبتدئ"},
		Description: model.BilingualText{
			En: "Foundations: Letters, pronunciation, basic vocabulary, and simple grammar.",
			Ar: "تأسيس – حروف، نطق، مفردات أساسية، قواعد بسيطة.",
		},
		EnglishLevelRange: []model.EnglishLevel{model.LevelA1, model.LevelA2},
		Lessons:           generateLessons("lvl1", LessonsPerLevel, model.LevelA2, level1Topics, level1Grammar),
	},
	{
		ID:    "lvl2",
		Title: model.BilingualText{En: "Level 2 – Intermediate", Ar: "المستوى 2 – متوسط"},
		Description: model.BilingualText{
			En: "Sentence structure, tenses, daily conversations, and writing.",
			Ar: "تركيب الجمل، الأزمنة، المحادثات اليومية، الكتابة.",
		},
		EnglishLevelRange: []model.EnglishLevel{model.LevelB1, model.LevelB2},
		Lessons:           generateLessons("lvl2", LessonsPerLevel, model.LevelB1, level2Topics, level2Grammar),
	},
	{
		ID:    "lvl3",
		Title: model.BilingualText{En: "Level 3 – Advanced", Ar: "المستوى 3 – متقدم"},
		Description: model.BilingualText{
			En: "Academic English, business skills, and accent refinement.",
			Ar: "الإنجليزية الأكاديمية، مهارات العمل، تحسين النطق.",
		},
		EnglishLevelRange: []model.EnglishLevel{model.LevelC1},
		Lessons:           generateLessons("lvl3", LessonsPerLevel, model.LevelC1, level3Topics, level3Grammar),
	},
}

func generateLessons(levelID string, count int, base model.EnglishLevel, topics, grammar []string) []model.CurriculumLesson {
	lessons := make([]model.CurriculumLesson, count)
	for i := 0; i < count; i++ {
		topic := topics[i%len(topics)]
		lessons[i] = model.CurriculumLesson{
			ID:      fmt.Sprintf("%s-lesson-%d", levelID, i+1),
			Title:   fmt.Sprintf("Lesson %d: %s", i+1, topic),
			Level:   base,
			Topic:   topic,
			Grammar: grammar[i%len(grammar)],
		}
	}
	return lessons
}

// Levels returns the full catalogue in definition order.
func Levels() []model.CurriculumLevel {
	return levels
}

// FindLesson looks a lesson up by id across all levels.
func FindLesson(id string) (model.CurriculumLesson, bool) {
	for _, level := range levels {
		for _, lesson := range level.Lessons {
			if lesson.ID == id {
				return lesson, true
			}
		}
	}
	return model.CurriculumLesson{}, false
}

// FindLevel looks a level up by id.
func FindLevel(id string) (model.CurriculumLevel, bool) {
	for _, level := range levels {
		if level.ID == id {
			return level, true
		}
	}
	return model.CurriculumLevel{}, false
}
