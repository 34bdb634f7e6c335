package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"linguastory-backend/internal/audio"
	"linguastory-backend/internal/cache"
	"linguastory-backend/internal/chat"
	"linguastory-backend/internal/config"
	"linguastory-backend/internal/controller"
	"linguastory-backend/internal/db"
	"linguastory-backend/internal/genai"
	"linguastory-backend/internal/logging"
	"linguastory-backend/internal/model"
	"linguastory-backend/internal/progress"
	"linguastory-backend/internal/repository"
	"linguastory-backend/internal/service"
	"linguastory-backend/internal/store"
	"linguastory-backend/pkg/middleware"
	"linguastory-backend/utilities"
)

func main() {
	printStartUpBanner()

	// .env carries the provider API key and JWT secrets.
	_ = godotenv.Load()

	// Load XML configuration from file.
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.Logging)
	defer logger.Close()

	// Initialize DB using the loaded config and run migrations.
	db.InitDBFromConfig(cfg)
	if err := db.GetDB().AutoMigrate(&model.User{}, &store.Entry{}); err != nil {
		logger.Fatalw("migration failed", "err", err)
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Warnw("GEMINI_API_KEY is not set; provider calls will fail")
	}

	// Shared plumbing.
	bus := utilities.NewEventBus()
	bus.Subscribe(utilities.EventLevelUnlocked, func(data interface{}) {
		if ev, ok := data.(progress.UnlockEvent); ok {
			logger.Infow("level unlocked", "level", ev.LevelID, "title", ev.Title.En)
		}
	})

	genaiClient := genai.NewClient(cfg.GenAI, apiKey, logger)
	lessonCache := cache.NewFromConfig(cfg.Cache, logger)
	kv := store.NewGormKV(db.GetDB())
	state := store.NewState(kv, logger)
	tracker := progress.NewTracker(bus)
	player := audio.NewController(genaiClient, audio.UnsupportedPlayer{}, bus, logger)

	// Create repositories and services.
	userRepo := repository.NewUserRepository()
	authService := service.NewAuthService(userRepo)
	lessonService := service.NewLessonService(genaiClient, lessonCache, state, tracker, logger)
	chatManager := chat.NewManager(genaiClient, player, logger)

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware(logger))
	}
	if cfg.Authentication.EnableTokenAuth {
		r.Use(middleware.AuthMiddleware())
	}

	controller.RegisterRoutes(r, controller.Deps{
		Auth:       authService,
		Lesson:     controller.NewLessonController(lessonService),
		Curriculum: controller.NewCurriculumController(lessonService),
		History:    controller.NewHistoryController(lessonService),
		Chat:       controller.NewChatController(chatManager, logger),
		Speech:     controller.NewSpeechController(genaiClient, logger),
		Prefs:      controller.NewPrefsController(state),
		RateLimit:  cfg.RateLimit,
	})

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	if err := r.Run(addr); err != nil {
		logger.Fatalw("server stopped", "err", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("LINGUASTORY", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("LINGUASTORY API (v%s)\n\n", "1.0.0")
}
