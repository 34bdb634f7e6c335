package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linguastory-backend/internal/curriculum"
	"linguastory-backend/internal/genai"
	"linguastory-backend/internal/service"
	"linguastory-backend/pkg/middleware"
)

// CurriculumController serves the static catalogue and the progression
// endpoints.
type CurriculumController struct {
	lessons service.LessonService
}

func NewCurriculumController(lessons service.LessonService) *CurriculumController {
	return &CurriculumController{lessons: lessons}
}

func (cc *CurriculumController) Levels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": curriculum.Levels()})
}

func (cc *CurriculumController) Progress(c *gin.Context) {
	c.JSON(http.StatusOK, cc.lessons.Progress(middleware.UserID(c)))
}

// StartLesson generates the lesson content for a curriculum entry. These
// generations are not recorded to history.
func (cc *CurriculumController) StartLesson(c *gin.Context) {
	lessonID := c.Param("id")

	lesson, currLesson, err := cc.lessons.StartCurriculumLesson(c.Request.Context(), middleware.UserID(c), lessonID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownCurriculumLesson):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown curriculum lesson"})
		case errors.Is(err, genai.ErrGeneration):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate lesson"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lesson":            lesson,
		"curriculum_lesson": currLesson,
	})
}

// CompleteLesson marks a curriculum lesson done and returns the recomputed
// progress, including any newly unlocked level.
func (cc *CurriculumController) CompleteLesson(c *gin.Context) {
	lessonID := c.Param("id")

	updated, err := cc.lessons.CompleteCurriculumLesson(middleware.UserID(c), lessonID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownCurriculumLesson) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown curriculum lesson"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}
