// Package chat owns conversational sessions against the generative provider:
// one transcript per session, streaming turn handling, and the implicit
// opening turn of conversation-practice mode.
package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"linguastory-backend/internal/genai"
	"linguastory-backend/internal/logging"
	"linguastory-backend/internal/model"
)

// Provider issues one streamed conversational turn. The framing string is
// the opaque session configuration composed at creation time.
type Provider interface {
	StreamChat(ctx context.Context, framing string, history []model.ChatMessage, message string, onDelta func(delta string)) (string, error)
}

// Speaker voices a finished reply. Conversation-practice sessions auto-play
// replies through it; failures there are logged, never surfaced.
type Speaker interface {
	Play(ctx context.Context, text, sourceKey string) error
}

type Mode string

const (
	ModeTutor        Mode = "tutor"
	ModeConversation Mode = "conversation"
)

type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
)

// Localized transcript strings.
var tutorWelcome = map[Language]string{
	LangEnglish: "Hi! I'm your English tutor. I see you've read the story. Do you have any questions about the vocabulary or grammar? Or shall we practice some conversation? 😊",
	LangArabic:  "أهلاً بك! أنا معلمك للغة الإنجليزية. هل لديك أي أسئلة حول المفردات أو القواعد في القصة؟ أم نتدرب على المحادثة؟ 😊",
}

var connectionError = map[Language]string{
	LangEnglish: "Sorry, I'm having trouble connecting right now. Please try again.",
	LangArabic:  "عذراً، أواجه مشكلة في الاتصال حالياً. يرجى المحاولة مرة أخرى.",
}

// ErrBusy is returned when a send is issued while a previous stream for the
// same session is still being consumed. Sends are serialized per session.
var ErrBusy = errors.New("a message is already in flight for this session")

var ErrSessionNotFound = errors.New("chat session not found")

// Session holds one live conversation. The framing is fixed at creation.
type Session struct {
	ID       string
	Mode     Mode
	Language Language
	Topic    string

	framing  string
	autoPlay bool

	mu       sync.Mutex
	busy     bool
	messages []model.ChatMessage
}

func (s *Session) appendMessage(role model.ChatRole, text string) model.ChatMessage {
	msg := model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Transcript returns a copy of the session's messages in order.
func (s *Session) Transcript() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChatMessage(nil), s.messages...)
}

// Manager tracks active sessions by id.
type Manager struct {
	provider Provider
	speaker  Speaker
	log      *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(provider Provider, speaker Speaker, log *logging.Logger) *Manager {
	return &Manager{
		provider: provider,
		speaker:  speaker,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// StartTutorSession opens a lesson-tutoring session. The transcript starts
// with a localized welcome from the model; nothing is sent to the provider
// until the first user message.
func (m *Manager) StartTutorSession(lesson *model.Lesson, lang Language) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Mode:     ModeTutor,
		Language: lang,
		framing:  genai.TutorFraming(lesson),
		autoPlay: false,
	}
	s.appendMessage(model.RoleModel, tutorWelcome[lang])

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// StartConversationSession opens a conversation-practice session and issues
// the implicit opening user turn so the transcript starts with a model
// greeting. The opening turn itself is not recorded in the transcript.
// Replies in this mode are auto-played.
func (m *Manager) StartConversationSession(ctx context.Context, params model.ConversationParams, lang Language) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Mode:     ModeConversation,
		Language: lang,
		Topic:    params.Topic,
		framing:  genai.ConversationFraming(params),
		autoPlay: true,
	}

	full, err := m.provider.StreamChat(ctx, s.framing, nil, genai.OpeningTurn(params.Topic), nil)
	s.mu.Lock()
	if err != nil || full == "" {
		m.log.Warnw("conversation opening turn failed", "err", err)
		s.appendMessage(model.RoleModel, connectionError[lang])
	} else {
		greeting := s.appendMessage(model.RoleModel, full)
		if s.autoPlay {
			m.autoSpeak(full, greeting.ID)
		}
	}
	s.mu.Unlock()

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close abandons a session. Any in-flight stream keeps draining into the
// discarded transcript; its result is ignored, not error-propagated.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Send issues one user turn. The user message lands in the transcript
// before the network call. Streamed deltas grow a single in-progress model
// message monotonically until the stream ends; onDelta observes each delta.
// On failure the transcript gets a single localized "connection trouble"
// model message and the session stays usable.
func (m *Manager) Send(ctx context.Context, sessionID, text string, onDelta func(delta string)) (model.ChatMessage, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return model.ChatMessage{}, err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return model.ChatMessage{}, ErrBusy
	}
	s.busy = true
	s.appendMessage(model.RoleUser, text)
	history := append([]model.ChatMessage(nil), s.messages[:len(s.messages)-1]...)
	framing := s.framing
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	reply := model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      model.RoleModel,
		Timestamp: time.Now().UnixMilli(),
	}
	added := false

	full, err := m.provider.StreamChat(ctx, framing, history, text, func(delta string) {
		s.mu.Lock()
		reply.Text += delta
		if !added {
			s.messages = append(s.messages, reply)
			added = true
		} else {
			s.messages[len(s.messages)-1].Text = reply.Text
		}
		s.mu.Unlock()
		if onDelta != nil {
			onDelta(delta)
		}
	})
	if err != nil {
		m.log.Warnw("chat turn failed", "session", sessionID, "err", err)
		s.mu.Lock()
		if added {
			// Drop the partial reply before substituting the error message.
			s.messages = s.messages[:len(s.messages)-1]
		}
		errMsg := s.appendMessage(model.RoleModel, connectionError[s.Language])
		s.mu.Unlock()
		return errMsg, nil
	}

	s.mu.Lock()
	if !added {
		reply.Text = full
		s.messages = append(s.messages, reply)
	} else {
		s.messages[len(s.messages)-1].Text = full
		reply.Text = full
	}
	s.mu.Unlock()

	if s.autoPlay && full != "" {
		m.autoSpeak(full, reply.ID)
	}

	return reply, nil
}

// autoSpeak voices a reply without blocking the send path. Synthesis errors
// during auto-play are logged only, never surfaced.
func (m *Manager) autoSpeak(text, sourceKey string) {
	if m.speaker == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := m.speaker.Play(ctx, text, sourceKey); err != nil {
			m.log.Debugw("auto-play failed", "source", sourceKey, "err", err)
		}
	}()
}
