package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguastory-backend/internal/cache"
	"linguastory-backend/internal/curriculum"
	"linguastory-backend/internal/logging"
	"linguastory-backend/internal/model"
	"linguastory-backend/internal/progress"
	"linguastory-backend/internal/store"
)

type fakeGenerator struct {
	calls   int64
	err     error
	block   chan struct{}
	started chan struct{}
}

func (g *fakeGenerator) GenerateLesson(_ context.Context, params model.LessonParams) (*model.Lesson, error) {
	atomic.AddInt64(&g.calls, 1)
	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.block != nil {
		<-g.block
	}
	if g.err != nil {
		return nil, g.err
	}
	return &model.Lesson{
		Title: "Lesson about " + params.Topic,
		Story: "a story",
	}, nil
}

// memoryCache is a map-backed LessonCache for tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]*model.Lesson
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]*model.Lesson)}
}

func (c *memoryCache) Get(_ context.Context, params model.LessonParams) (*model.Lesson, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.data[cache.Key(params)]
	return l, ok
}

func (c *memoryCache) Set(_ context.Context, params model.LessonParams, lesson *model.Lesson) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[cache.Key(params)] = lesson
}

func newTestService(gen *fakeGenerator, lessonCache cache.LessonCache) LessonService {
	state := store.NewState(store.NewMemoryKV(), logging.NewNop())
	return NewLessonService(gen, lessonCache, state, progress.NewTracker(nil), logging.NewNop())
}

func TestGenerateRecordsHistory(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestService(gen, cache.NopCache{})

	params := model.LessonParams{Level: model.LevelB1, Topic: "Travel"}
	lesson, item, err := svc.Generate(context.Background(), 1, params)
	require.NoError(t, err)

	assert.Equal(t, "Lesson about Travel", lesson.Title)
	assert.NotEmpty(t, item.ID)

	items := svc.History(1)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, params, items[0].Params)

	// Other users see their own empty history.
	assert.Empty(t, svc.History(2))
}

func TestGenerateFailurePropagatesAndSkipsHistory(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("provider down")}
	svc := newTestService(gen, cache.NopCache{})

	_, _, err := svc.Generate(context.Background(), 1, model.LessonParams{Topic: "x"})
	require.Error(t, err)
	assert.Empty(t, svc.History(1))
}

func TestGenerateUsesCache(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestService(gen, newMemoryCache())

	params := model.LessonParams{Level: model.LevelA2, Topic: "Food"}
	_, _, err := svc.Generate(context.Background(), 1, params)
	require.NoError(t, err)
	_, _, err = svc.Generate(context.Background(), 1, params)
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&gen.calls))
	// Both generations still land in history individually.
	assert.Len(t, svc.History(1), 2)
}

func TestConcurrentIdenticalRequestsCollapse(t *testing.T) {
	gen := &fakeGenerator{
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	svc := newTestService(gen, cache.NopCache{})
	params := model.LessonParams{Level: model.LevelB2, Topic: "Space"}

	var wg sync.WaitGroup
	results := make([]*model.Lesson, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lesson, _, err := svc.Generate(context.Background(), 1, params)
			assert.NoError(t, err)
			results[i] = lesson
		}(i)
	}

	// Let both callers reach the in-flight group before the provider returns.
	<-gen.started
	time.Sleep(20 * time.Millisecond)
	close(gen.block)
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&gen.calls))
	assert.Equal(t, results[0], results[1])
}

func TestStartCurriculumLesson(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestService(gen, cache.NopCache{})

	lesson, currLesson, err := svc.StartCurriculumLesson(context.Background(), 1, "lvl1-lesson-1")
	require.NoError(t, err)

	assert.Equal(t, "lvl1-lesson-1", currLesson.ID)
	assert.Contains(t, lesson.Title, currLesson.Topic)

	// Curriculum generations are never recorded to history.
	assert.Empty(t, svc.History(1))
}

func TestStartCurriculumLessonUnknownID(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, cache.NopCache{})

	_, _, err := svc.StartCurriculumLesson(context.Background(), 1, "lvl9-lesson-1")
	assert.ErrorIs(t, err, ErrUnknownCurriculumLesson)
}

func TestCompleteCurriculumLessonPersistsProgress(t *testing.T) {
	gen := &fakeGenerator{}
	kv := store.NewMemoryKV()
	state := store.NewState(kv, logging.NewNop())
	svc := NewLessonService(gen, cache.NopCache{}, state, progress.NewTracker(nil), logging.NewNop())

	updated, err := svc.CompleteCurriculumLesson(1, "lvl1-lesson-1")
	require.NoError(t, err)
	assert.True(t, updated.Completed("lvl1-lesson-1"))

	// Progress must survive a service restart.
	fresh := NewLessonService(gen, cache.NopCache{}, state, progress.NewTracker(nil), logging.NewNop())
	assert.True(t, fresh.Progress(1).Completed("lvl1-lesson-1"))
}

func TestCompleteCurriculumLessonUnknownID(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, cache.NopCache{})

	_, err := svc.CompleteCurriculumLesson(1, "nope")
	assert.ErrorIs(t, err, ErrUnknownCurriculumLesson)
}

func TestCompletingWholeLevelUnlocksNext(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, cache.NopCache{})

	var p model.UserProgress
	for i := 1; i <= curriculum.LessonsPerLevel; i++ {
		var err error
		p, err = svc.CompleteCurriculumLesson(1, curriculum.Levels()[0].Lessons[i-1].ID)
		require.NoError(t, err)
	}

	assert.True(t, p.Unlocked("lvl2"))
	assert.False(t, p.Unlocked("lvl3"))
}

func TestDeleteHistoryItem(t *testing.T) {
	gen := &fakeGenerator{}
	kv := store.NewMemoryKV()
	state := store.NewState(kv, logging.NewNop())
	svc := NewLessonService(gen, cache.NopCache{}, state, progress.NewTracker(nil), logging.NewNop())

	_, item, err := svc.Generate(context.Background(), 1, model.LessonParams{Topic: "a"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHistoryItem(1, item.ID))
	assert.Empty(t, svc.History(1))

	// Deletion is persisted, not just in-memory.
	fresh := NewLessonService(gen, cache.NopCache{}, state, progress.NewTracker(nil), logging.NewNop())
	assert.Empty(t, fresh.History(1))
}
