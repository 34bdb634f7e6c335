package genai

import (
	"fmt"
	"unicode/utf8"

	"linguastory-backend/internal/model"
)

var lessonSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"title":            {Type: "STRING"},
		"story":            {Type: "STRING"},
		"storyTranslation": {Type: "STRING"},
		"vocabulary": {
			Type: "ARRAY",
			Items: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"word":           {Type: "STRING"},
					"englishMeaning": {Type: "STRING"},
					"arabicMeaning":  {Type: "STRING"},
				},
				Required: []string{"word", "englishMeaning", "arabicMeaning"},
			},
		},
		"comprehensionQuestions": {Type: "ARRAY", Items: &schema{Type: "STRING"}},
		"discussionQuestions":    {Type: "ARRAY", Items: &schema{Type: "STRING"}},
		"writingTask":            {Type: "STRING"},
	},
	Required: []string{
		"title", "story", "storyTranslation", "vocabulary",
		"comprehensionQuestions", "discussionQuestions", "writingTask",
	},
}

func lessonPrompt(p model.LessonParams) string {
	return fmt.Sprintf(`Generate a structured English lesson for an English learner.

Parameters:
- Level: %s
- Genre: %s
- Topic: %s
- Target Grammar: %s
- Length: %s

Requirements:
1. Story: Write an engaging story fitting the level, genre, and topic. Highlight the use of %s.
2. Story Translation: Provide a natural Arabic translation of the generated story.
3. Vocabulary: Pick 12+ challenging words from the story. Provide English definition and Arabic translation.
4. Comprehension: 5 questions to test understanding of the plot.
5. Discussion: 3-5 open-ended questions to spark conversation.
6. Writing Task: One creative writing prompt related to the story.

Adaptivity:
- For A1-A2: Use simple sentences, high frequency words.
- For B1-B2: Use more complex structures.
- For C1: Use nuanced vocabulary and idioms.`,
		p.Level, p.Genre, p.Topic, p.Grammar, p.Length, p.Grammar)
}

// TutorFraming composes the one-time system framing for a lesson-tutoring
// session. Passed once at session creation, never re-sent per message.
func TutorFraming(lesson *model.Lesson) string {
	summary := lesson.Story
	if len(summary) > 200 {
		cut := 200
		// Back off to a rune boundary so the cut never splits a character.
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut]
	}
	return fmt.Sprintf(`You are a friendly, encouraging, and patient English Tutor named "LinguaBot".

Context: The student is currently studying a lesson titled "%s".
Story Summary: %s...

Your Goals:
1. Help the student understand the vocabulary and grammar from the story.
2. If the student makes a grammar mistake, gently correct them by showing the correct version, then explain why.
3. Ask follow-up questions based on the "Discussion Questions" provided in the lesson to practice speaking/writing.
4. Keep explanations simple and concise. Avoid long lectures.
5. Be supportive and use emojis occasionally to keep the mood light.`,
		lesson.Title, summary)
}

// ConversationFraming composes the framing for conversation-practice mode.
func ConversationFraming(p model.ConversationParams) string {
	return fmt.Sprintf(`You are "LinguaBot", a friendly English conversation partner designed to help students practice speaking.

Parameters:
- Topic: %s
- User Level: %s

Instructions:
1. Engage in a natural, friendly conversation about the chosen topic.
2. Ask open-ended questions to keep the conversation going.
3. Adjust your vocabulary and sentence complexity to match the User Level (%s).
4. Keep your responses relatively short (1-3 sentences) to allow for a back-and-forth dialogue.
5. If the user makes a significant grammar or vocabulary mistake, gently correct it at the end of your response in parentheses, e.g., "(Correction: ...)" but do not interrupt the flow.
6. Be encouraging and fun!`,
		p.Topic, p.Level, p.Level)
}

// OpeningTurn is the implicit first user message of a conversation session,
// sent so the transcript starts with a model greeting rather than empty.
func OpeningTurn(topic string) string {
	return fmt.Sprintf("Hi! Let's talk about %s.", topic)
}

func translatePrompt(text string) string {
	return fmt.Sprintf(`Translate the following English text to Arabic. Output ONLY the translated text without any explanation. Text: "%s"`, text)
}

func helperPrompt(text string, mode HelperMode) string {
	if mode == HelperTranslate {
		return fmt.Sprintf(`Translate the following Arabic text to natural, conversational English. Output ONLY the English translation, no other text. Text: "%s"`, text)
	}
	return fmt.Sprintf(`Correct the grammar, spelling, and vocabulary of the following English text to make it sound natural and correct. Output ONLY the corrected text, no explanation. Text: "%s"`, text)
}
