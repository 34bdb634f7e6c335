// Package progress owns the curriculum unlock state machine.
package progress

import (
	"linguastory-backend/internal/model"
	"linguastory-backend/utilities"
)

// UnlockEvent is published on the event bus whenever completing a lesson
// unlocks the next level.
type UnlockEvent struct {
	LevelID string
	Title   model.BilingualText
}

// Tracker evaluates completion and unlock transitions over a fixed level
// order. It never persists anything itself; callers store the returned value.
type Tracker struct {
	bus *utilities.EventBus
}

func NewTracker(bus *utilities.EventBus) *Tracker {
	return &Tracker{bus: bus}
}

// DefaultProgress is the starting state: first level unlocked, nothing done.
func DefaultProgress(levels []model.CurriculumLevel) model.UserProgress {
	p := model.UserProgress{
		CompletedLessonIDs: []string{},
		UnlockedLevelIDs:   []string{},
	}
	if len(levels) > 0 {
		p.UnlockedLevelIDs = append(p.UnlockedLevelIDs, levels[0].ID)
	}
	return p
}

// Normalize guarantees the first-level invariant on progress loaded from
// storage, without touching anything else.
func Normalize(p model.UserProgress, levels []model.CurriculumLevel) model.UserProgress {
	if len(levels) > 0 && !p.Unlocked(levels[0].ID) {
		p.UnlockedLevelIDs = append([]string{levels[0].ID}, p.UnlockedLevelIDs...)
	}
	if p.CompletedLessonIDs == nil {
		p.CompletedLessonIDs = []string{}
	}
	return p
}

// CompleteLesson marks lessonID as completed and recomputes the unlock state.
// Completion is idempotent. Levels are scanned in definition order; a level
// whose lessons are all completed unlocks the next level in order. Unlocked
// levels never re-lock. An empty lessonID is a no-op.
func (t *Tracker) CompleteLesson(p model.UserProgress, lessonID string, levels []model.CurriculumLevel) model.UserProgress {
	if lessonID == "" {
		return p
	}

	out := model.UserProgress{
		CompletedLessonIDs: append([]string(nil), p.CompletedLessonIDs...),
		UnlockedLevelIDs:   append([]string(nil), p.UnlockedLevelIDs...),
	}
	if !out.Completed(lessonID) {
		out.CompletedLessonIDs = append(out.CompletedLessonIDs, lessonID)
	}

	for idx, level := range levels {
		if !levelComplete(level, out) {
			continue
		}
		if idx+1 >= len(levels) {
			continue
		}
		next := levels[idx+1]
		if out.Unlocked(next.ID) {
			continue
		}
		out.UnlockedLevelIDs = append(out.UnlockedLevelIDs, next.ID)
		if t.bus != nil {
			t.bus.Publish(utilities.EventLevelUnlocked, UnlockEvent{
				LevelID: next.ID,
				Title:   next.Title,
			})
		}
	}

	return out
}

func levelComplete(level model.CurriculumLevel, p model.UserProgress) bool {
	for _, lesson := range level.Lessons {
		if !p.Completed(lesson.ID) {
			return false
		}
	}
	return true
}
