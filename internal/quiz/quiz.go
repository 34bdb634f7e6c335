// Package quiz implements the vocabulary self-test attached to a lesson.
package quiz

import (
	"errors"
	"math/rand"

	"linguastory-backend/internal/model"
)

// OptionCount is the number of choices offered per question when the lesson
// has enough vocabulary to supply distractors.
const OptionCount = 4

var ErrNoVocabulary = errors.New("quiz requires at least one vocabulary item")

// Quiz walks a lesson's vocabulary linearly. Each question offers the
// correct Arabic meaning plus up to three distractors sampled without
// replacement from the other items.
type Quiz struct {
	vocab    []model.VocabularyItem
	rng      *rand.Rand
	index    int
	score    int
	selected string
	locked   bool
	finished bool
	options  []string
}

func New(vocab []model.VocabularyItem, rng *rand.Rand) (*Quiz, error) {
	if len(vocab) == 0 {
		return nil, ErrNoVocabulary
	}
	q := &Quiz{vocab: vocab, rng: rng}
	q.options = q.buildOptions(0)
	return q, nil
}

func (q *Quiz) buildOptions(index int) []string {
	correct := q.vocab[index].ArabicMeaning

	others := make([]string, 0, len(q.vocab)-1)
	for i, v := range q.vocab {
		if i != index {
			others = append(others, v.ArabicMeaning)
		}
	}
	q.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	n := OptionCount - 1
	if n > len(others) {
		n = len(others)
	}
	options := append(others[:n:n], correct)
	q.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// Options returns the choices for the current question in display order.
func (q *Quiz) Options() []string {
	return append([]string(nil), q.options...)
}

// Select answers the current question. The first selection locks the
// question; repeats have no effect. A correct first answer scores exactly 1.
func (q *Quiz) Select(option string) (correct bool) {
	if q.locked || q.finished {
		return false
	}
	q.locked = true
	q.selected = option
	if option == q.vocab[q.index].ArabicMeaning {
		q.score++
		return true
	}
	return false
}

// Next advances to the following question, or finishes the quiz after the
// last one. The final score freezes on finish.
func (q *Quiz) Next() {
	if q.finished {
		return
	}
	if q.index < len(q.vocab)-1 {
		q.index++
		q.locked = false
		q.selected = ""
		q.options = q.buildOptions(q.index)
		return
	}
	q.finished = true
}

// Restart resets score and position and regenerates options for item 0.
func (q *Quiz) Restart() {
	q.index = 0
	q.score = 0
	q.locked = false
	q.selected = ""
	q.finished = false
	q.options = q.buildOptions(0)
}

func (q *Quiz) Index() int       { return q.index }
func (q *Quiz) Score() int       { return q.score }
func (q *Quiz) Finished() bool   { return q.finished }
func (q *Quiz) Locked() bool     { return q.locked }
func (q *Quiz) Selected() string { return q.selected }
func (q *Quiz) Total() int       { return len(q.vocab) }

func (q *Quiz) Current() model.VocabularyItem {
	return q.vocab[q.index]
}
