package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linguastory-backend/internal/service"
	"linguastory-backend/pkg/middleware"
)

// HistoryController lists and deletes past generations.
type HistoryController struct {
	lessons service.LessonService
}

func NewHistoryController(lessons service.LessonService) *HistoryController {
	return &HistoryController{lessons: lessons}
}

func (hc *HistoryController) List(c *gin.Context) {
	items := hc.lessons.History(middleware.UserID(c))
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Delete removes one history entry. Deleting an unknown id is not an error.
func (hc *HistoryController) Delete(c *gin.Context) {
	if err := hc.lessons.DeleteHistoryItem(middleware.UserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
