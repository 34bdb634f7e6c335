// Package history keeps the bounded record of past free-form generations.
package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"linguastory-backend/internal/model"
)

// MaxItems caps the log: recording beyond the cap evicts the oldest entries.
const MaxItems = 50

// Log is an append-at-front, user-deletable list of generated lessons.
// Listing is always newest-first.
type Log struct {
	mu    sync.Mutex
	items []model.HistoryItem
	now   func() time.Time
}

func NewLog() *Log {
	return &Log{now: time.Now}
}

// Restore builds a log from previously persisted items, re-applying the cap.
func Restore(items []model.HistoryItem) *Log {
	l := NewLog()
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	l.items = append(l.items, items...)
	return l
}

// Record assigns a fresh id and timestamp, prepends the entry and truncates
// to the most recent MaxItems.
func (l *Log) Record(lesson model.Lesson, params model.LessonParams) model.HistoryItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now()
	item := model.HistoryItem{
		ID:        fmt.Sprintf("%d-%s", ts.UnixMilli(), uuid.NewString()[:8]),
		Timestamp: ts.UnixMilli(),
		Lesson:    lesson,
		Params:    params,
	}

	l.items = append([]model.HistoryItem{item}, l.items...)
	if len(l.items) > MaxItems {
		l.items = l.items[:MaxItems]
	}
	return item
}

// Delete removes the entry with the given id. Unknown ids are a no-op.
func (l *Log) Delete(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the log, newest first.
func (l *Log) Items() []model.HistoryItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.HistoryItem(nil), l.items...)
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
