package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"linguastory-backend/internal/chat"
	"linguastory-backend/internal/logging"
	"linguastory-backend/internal/model"
)

// ChatController exposes tutoring and conversation-practice sessions. Turn
// replies are streamed as Server-Sent Events.
type ChatController struct {
	manager *chat.Manager
	log     *logging.Logger
}

func NewChatController(manager *chat.Manager, log *logging.Logger) *ChatController {
	return &ChatController{manager: manager, log: log}
}

type createSessionRequest struct {
	Mode     chat.Mode          `json:"mode" binding:"required"`
	Language chat.Language      `json:"language"`
	Lesson   *model.Lesson      `json:"lesson,omitempty"`
	Topic    string             `json:"topic,omitempty"`
	Level    model.EnglishLevel `json:"level,omitempty"`
}

func (cc *ChatController) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	lang := req.Language
	if lang != chat.LangEnglish && lang != chat.LangArabic {
		lang = chat.LangArabic
	}

	var session *chat.Session
	switch req.Mode {
	case chat.ModeTutor:
		if req.Lesson == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tutor sessions require a lesson"})
			return
		}
		session = cc.manager.StartTutorSession(req.Lesson, lang)
	case chat.ModeConversation:
		if req.Topic == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Conversation sessions require a topic"})
			return
		}
		session = cc.manager.StartConversationSession(c.Request.Context(), model.ConversationParams{
			Topic: req.Topic,
			Level: req.Level,
		}, lang)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown session mode"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"mode":       session.Mode,
		"messages":   session.Transcript(),
	})
}

func (cc *ChatController) GetSession(c *gin.Context) {
	session, err := cc.manager.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"mode":       session.Mode,
		"messages":   session.Transcript(),
	})
}

func (cc *ChatController) CloseSession(c *gin.Context) {
	cc.manager.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type sendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// StreamChatResponse represents a streaming response chunk
type StreamChatResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// SendMessage streams one turn's reply as Server-Sent Events.
func (cc *ChatController) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	sessionID := c.Param("id")

	// Set headers for Server-Sent Events
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	writeChunk := func(chunk StreamChatResponse) {
		data, err := json.Marshal(chunk)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		c.Writer.Flush()
	}

	reply, err := cc.manager.Send(c.Request.Context(), sessionID, req.Message, func(delta string) {
		writeChunk(StreamChatResponse{Response: delta})
	})
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrSessionNotFound):
			writeChunk(StreamChatResponse{Error: "Session not found", Done: true})
		case errors.Is(err, chat.ErrBusy):
			writeChunk(StreamChatResponse{Error: "A message is already in flight", Done: true})
		default:
			cc.log.Warnw("chat send failed", "session", sessionID, "err", err)
			writeChunk(StreamChatResponse{Error: "Failed to generate response", Done: true})
		}
	} else {
		writeChunk(StreamChatResponse{Response: reply.Text, Done: true})
	}

	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}
