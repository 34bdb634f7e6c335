package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linguastory-backend/internal/store"
	"linguastory-backend/pkg/middleware"
)

// PrefsController persists small per-user preferences (theme).
type PrefsController struct {
	state *store.State
}

func NewPrefsController(state *store.State) *PrefsController {
	return &PrefsController{state: state}
}

func (pc *PrefsController) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": pc.state.LoadTheme(middleware.UserID(c))})
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

func (pc *PrefsController) PutTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.Theme != "light" && req.Theme != "dark" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Theme must be light or dark"})
		return
	}
	if err := pc.state.SaveTheme(middleware.UserID(c), req.Theme); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
