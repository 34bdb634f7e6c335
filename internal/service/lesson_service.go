package service

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"linguastory-backend/internal/cache"
	"linguastory-backend/internal/curriculum"
	"linguastory-backend/internal/history"
	"linguastory-backend/internal/logging"
	"linguastory-backend/internal/model"
	"linguastory-backend/internal/progress"
	"linguastory-backend/internal/store"
)

var ErrUnknownCurriculumLesson = errors.New("unknown curriculum lesson")

// Generator produces lessons; satisfied by the genai client.
type Generator interface {
	GenerateLesson(ctx context.Context, params model.LessonParams) (*model.Lesson, error)
}

// LessonService drives generation, curriculum progression and the history
// log. Per-user state is read from the store once and then treated as the
// in-memory source of truth, written back whole on every mutation.
type LessonService interface {
	Generate(ctx context.Context, userID uint, params model.LessonParams) (*model.Lesson, model.HistoryItem, error)
	StartCurriculumLesson(ctx context.Context, userID uint, curriculumLessonID string) (*model.Lesson, model.CurriculumLesson, error)
	CompleteCurriculumLesson(userID uint, curriculumLessonID string) (model.UserProgress, error)
	Progress(userID uint) model.UserProgress
	History(userID uint) []model.HistoryItem
	DeleteHistoryItem(userID uint, id string) error
}

type lessonService struct {
	generator Generator
	cache     cache.LessonCache
	state     *store.State
	tracker   *progress.Tracker
	log       *logging.Logger

	group singleflight.Group

	mu         sync.Mutex
	histories  map[uint]*history.Log
	progresses map[uint]model.UserProgress
}

func NewLessonService(generator Generator, lessonCache cache.LessonCache, state *store.State, tracker *progress.Tracker, log *logging.Logger) LessonService {
	return &lessonService{
		generator:  generator,
		cache:      lessonCache,
		state:      state,
		tracker:    tracker,
		log:        log,
		histories:  make(map[uint]*history.Log),
		progresses: make(map[uint]model.UserProgress),
	}
}

func (s *lessonService) historyLog(userID uint) *history.Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.histories[userID]; ok {
		return l
	}
	l := history.Restore(s.state.LoadHistory(userID))
	s.histories[userID] = l
	return l
}

func (s *lessonService) userProgress(userID uint) model.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.progresses[userID]; ok {
		return p
	}
	p := s.state.LoadProgress(userID)
	s.progresses[userID] = p
	return p
}

// generateDeduped collapses identical concurrent requests (double submits)
// into one provider call and consults the cache first.
func (s *lessonService) generateDeduped(ctx context.Context, params model.LessonParams) (*model.Lesson, error) {
	v, err, _ := s.group.Do(cache.Key(params), func() (interface{}, error) {
		if lesson, ok := s.cache.Get(ctx, params); ok {
			return lesson, nil
		}
		lesson, err := s.generator.GenerateLesson(ctx, params)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, params, lesson)
		return lesson, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Lesson), nil
}

// Generate handles a free-form generation: on success the lesson is recorded
// to the user's history and the history is persisted.
func (s *lessonService) Generate(ctx context.Context, userID uint, params model.LessonParams) (*model.Lesson, model.HistoryItem, error) {
	lesson, err := s.generateDeduped(ctx, params)
	if err != nil {
		return nil, model.HistoryItem{}, err
	}

	log := s.historyLog(userID)
	item := log.Record(*lesson, params)
	if err := s.state.SaveHistory(userID, log.Items()); err != nil {
		s.log.Errorw("history write failed", "user", userID, "err", err)
	}
	return lesson, item, nil
}

// StartCurriculumLesson generates the lesson matching a curriculum entry.
// Curriculum-triggered generations are not recorded to history.
func (s *lessonService) StartCurriculumLesson(ctx context.Context, userID uint, curriculumLessonID string) (*model.Lesson, model.CurriculumLesson, error) {
	currLesson, ok := curriculum.FindLesson(curriculumLessonID)
	if !ok {
		return nil, model.CurriculumLesson{}, ErrUnknownCurriculumLesson
	}

	params := model.LessonParams{
		Level:   currLesson.Level,
		Genre:   curriculum.Genres[0],
		Topic:   currLesson.Topic,
		Grammar: currLesson.Grammar,
		Length:  model.LengthMedium,
	}
	lesson, err := s.generateDeduped(ctx, params)
	if err != nil {
		return nil, model.CurriculumLesson{}, err
	}
	return lesson, currLesson, nil
}

// CompleteCurriculumLesson runs the unlock transition and persists the new
// progress value.
func (s *lessonService) CompleteCurriculumLesson(userID uint, curriculumLessonID string) (model.UserProgress, error) {
	if _, ok := curriculum.FindLesson(curriculumLessonID); !ok {
		return model.UserProgress{}, ErrUnknownCurriculumLesson
	}

	current := s.userProgress(userID)
	updated := s.tracker.CompleteLesson(current, curriculumLessonID, curriculum.Levels())

	s.mu.Lock()
	s.progresses[userID] = updated
	s.mu.Unlock()

	if err := s.state.SaveProgress(userID, updated); err != nil {
		s.log.Errorw("progress write failed", "user", userID, "err", err)
	}
	return updated, nil
}

func (s *lessonService) Progress(userID uint) model.UserProgress {
	return s.userProgress(userID)
}

func (s *lessonService) History(userID uint) []model.HistoryItem {
	return s.historyLog(userID).Items()
}

func (s *lessonService) DeleteHistoryItem(userID uint, id string) error {
	log := s.historyLog(userID)
	log.Delete(id)
	return s.state.SaveHistory(userID, log.Items())
}
