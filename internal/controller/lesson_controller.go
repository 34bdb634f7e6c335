package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linguastory-backend/internal/genai"
	"linguastory-backend/internal/model"
	"linguastory-backend/internal/pdf"
	"linguastory-backend/internal/service"
	"linguastory-backend/pkg/middleware"
)

// LessonController handles free-form lesson generation and export.
type LessonController struct {
	lessons service.LessonService
}

func NewLessonController(lessons service.LessonService) *LessonController {
	return &LessonController{lessons: lessons}
}

type generateLessonRequest struct {
	Level   model.EnglishLevel `json:"level" binding:"required"`
	Genre   string             `json:"genre" binding:"required"`
	Topic   string             `json:"topic" binding:"required"`
	Grammar string             `json:"grammar" binding:"required"`
	Length  model.LessonLength `json:"length" binding:"required"`
}

func (lc *LessonController) Generate(c *gin.Context) {
	var req generateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if !req.Level.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown English level"})
		return
	}

	params := model.LessonParams{
		Level:   req.Level,
		Genre:   req.Genre,
		Topic:   req.Topic,
		Grammar: req.Grammar,
		Length:  req.Length,
	}

	lesson, item, err := lc.lessons.Generate(c.Request.Context(), middleware.UserID(c), params)
	if err != nil {
		if errors.Is(err, genai.ErrGeneration) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate lesson"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lesson":     lesson,
		"history_id": item.ID,
	})
}

func (lc *LessonController) Export(c *gin.Context) {
	var lesson model.Lesson
	if err := c.ShouldBindJSON(&lesson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := genai.ValidateLesson(&lesson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := pdf.ExportLesson(&lesson)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="lesson.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
