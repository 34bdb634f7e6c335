package utilities

import "sync"

// Event topics published by the application.
const (
	EventLevelUnlocked   = "level_unlocked"
	EventLessonCompleted = "lesson_completed"
	EventAudioFailed     = "audio_failed"
)

type EventHandler func(interface{})

// EventBus is a minimal in-process pub/sub used for fire-and-forget
// notifications such as level unlocks. Handlers run asynchronously.
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(event string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[event] = append(eb.handlers[event], handler)
}

func (eb *EventBus) Publish(event string, data interface{}) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if handlers, found := eb.handlers[event]; found {
		for _, handler := range handlers {
			go handler(data)
		}
	}
}
