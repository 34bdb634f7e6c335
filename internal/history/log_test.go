package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguastory-backend/internal/model"
)

func testLesson(title string) model.Lesson {
	return model.Lesson{Title: title, Story: "once upon a time"}
}

func TestRecordPrependsNewestFirst(t *testing.T) {
	l := NewLog()

	l.Record(testLesson("first"), model.LessonParams{})
	l.Record(testLesson("second"), model.LessonParams{})

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Lesson.Title)
	assert.Equal(t, "first", items[1].Lesson.Title)
}

func TestRecordAssignsUniqueIDs(t *testing.T) {
	l := NewLog()

	a := l.Record(testLesson("a"), model.LessonParams{})
	b := l.Record(testLesson("b"), model.LessonParams{})

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotZero(t, a.Timestamp)
}

func TestCapEvictsOldest(t *testing.T) {
	l := NewLog()
	// Deterministic clock so eviction order is observable through titles.
	base := time.UnixMilli(1700000000000)
	i := 0
	l.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Second)
	}

	for n := 1; n <= MaxItems+1; n++ {
		l.Record(testLesson(fmt.Sprintf("lesson-%d", n)), model.LessonParams{})
	}

	items := l.Items()
	require.Len(t, items, MaxItems)
	assert.Equal(t, fmt.Sprintf("lesson-%d", MaxItems+1), items[0].Lesson.Title)
	// lesson-1 was evicted; the oldest survivor is lesson-2.
	assert.Equal(t, "lesson-2", items[len(items)-1].Lesson.Title)
}

func TestDeleteRemovesOnlyMatchingID(t *testing.T) {
	l := NewLog()

	keep := l.Record(testLesson("keep"), model.LessonParams{})
	gone := l.Record(testLesson("gone"), model.LessonParams{})

	l.Delete(gone.ID)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	l := NewLog()
	l.Record(testLesson("only"), model.LessonParams{})

	l.Delete("nope")
	l.Delete("")

	assert.Equal(t, 1, l.Len())
}

func TestRestoreReappliesCap(t *testing.T) {
	items := make([]model.HistoryItem, MaxItems+10)
	for i := range items {
		items[i] = model.HistoryItem{ID: fmt.Sprintf("id-%d", i)}
	}

	l := Restore(items)

	assert.Equal(t, MaxItems, l.Len())
	assert.Equal(t, "id-0", l.Items()[0].ID)
}

func TestItemsReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Record(testLesson("original"), model.LessonParams{})

	items := l.Items()
	items[0].Lesson.Title = "mutated"

	assert.Equal(t, "original", l.Items()[0].Lesson.Title)
}
