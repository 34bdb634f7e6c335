package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linguastory-backend/internal/config"
	"linguastory-backend/internal/model"
	"linguastory-backend/internal/service"
	"linguastory-backend/pkg/middleware"
	"linguastory-backend/utilities"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Auth       service.AuthService
	Lesson     *LessonController
	Curriculum *CurriculumController
	History    *HistoryController
	Chat       *ChatController
	Speech     *SpeechController
	Prefs      *PrefsController
	RateLimit  config.RateLimitConfig
}

// RegisterRoutes wires the full API surface onto the router.
func RegisterRoutes(r *gin.Engine, d Deps) {
	// Auth routes.
	auth := r.Group("/auth")
	{
		auth.POST("/register", func(c *gin.Context) {
			var user model.User
			if err := c.ShouldBindJSON(&user); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}
			if err := d.Auth.Register(&user); err != nil {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
		})

		auth.POST("/login", func(c *gin.Context) {
			var creds struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&creds); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}
			user, err := d.Auth.Login(creds.Email, creds.Password)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			access, refresh, err := utilities.GenerateTokens(user)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"user":          user,
				"access_token":  access,
				"refresh_token": refresh,
			})
		})

		auth.POST("/refresh", func(c *gin.Context) {
			var req struct {
				RefreshToken string `json:"refresh_token" binding:"required"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}
			access, refresh, err := utilities.RefreshTokens(req.RefreshToken)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"access_token":  access,
				"refresh_token": refresh,
			})
		})
	}

	generate := middleware.RateLimitMiddleware(d.RateLimit)

	// Lesson routes.
	r.POST("/lessons", generate, d.Lesson.Generate)
	r.POST("/lessons/export", d.Lesson.Export)

	// Curriculum routes.
	r.GET("/curriculum", d.Curriculum.Levels)
	r.GET("/progress", d.Curriculum.Progress)
	r.POST("/curriculum/lessons/:id/start", generate, d.Curriculum.StartLesson)
	r.POST("/curriculum/lessons/:id/complete", d.Curriculum.CompleteLesson)

	// History routes.
	r.GET("/history", d.History.List)
	r.DELETE("/history/:id", d.History.Delete)

	// Chat routes.
	r.POST("/chat/sessions", d.Chat.CreateSession)
	r.GET("/chat/sessions/:id", d.Chat.GetSession)
	r.DELETE("/chat/sessions/:id", d.Chat.CloseSession)
	r.POST("/chat/sessions/:id/messages", d.Chat.SendMessage)

	// Speech and translation routes.
	r.POST("/speech", generate, d.Speech.Synthesize)
	r.POST("/translate", d.Speech.Translate)
	r.POST("/helper", d.Speech.Helper)

	// Preference routes.
	r.GET("/preferences/theme", d.Prefs.GetTheme)
	r.PUT("/preferences/theme", d.Prefs.PutTheme)
}
