package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lingua-tutor/internal/adapter/classifier"
	"lingua-tutor/internal/config"
	"lingua-tutor/internal/handler"
	"lingua-tutor/internal/logger"
	"lingua-tutor/internal/middleware"
	"lingua-tutor/internal/repository/supabase"
	"lingua-tutor/internal/service"
	"lingua-tutor/internal/validation"

	openaiLLM "github.com/tmc/langchaingo/llms/openai"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Tutor persona shared by text chat and the realtime voice session
	prompt, err := service.LoadTutorPrompt(cfg.PromptPath)
	if err != nil {
		appLogger.Fatal("Failed to load tutor prompt", zap.Error(err))
	}

	// Supabase clients
	supabaseClient := supabase.NewClient(cfg.Supabase)
	candoRepo := supabase.NewCanDoRepository(supabaseClient)
	achievementRepo := supabase.NewAchievementRepository(supabaseClient)
	analysisLogRepo := supabase.NewAnalysisLogRepository(supabaseClient)
	profileRepo := supabase.NewProfileRepository(supabaseClient)
	authAdmin := supabase.NewAuthAdminClient(supabaseClient)

	// OpenAI clients
	transcriptClassifier, err := classifier.NewOpenAIClassifier(cfg.OpenAI)
	if err != nil {
		appLogger.Fatal("Failed to create classifier", zap.Error(err))
	}
	chatLLM, err := openaiLLM.New(
		openaiLLM.WithToken(cfg.OpenAI.APIKey),
		openaiLLM.WithModel(cfg.OpenAI.ChatModel),
	)
	if err != nil {
		appLogger.Fatal("Failed to create chat LLM client", zap.Error(err))
	}

	// Initialize services
	analysisService := service.NewAnalysisService(candoRepo, achievementRepo, analysisLogRepo, profileRepo, transcriptClassifier)
	progressService := service.NewProgressService(candoRepo, achievementRepo)
	chatService := service.NewChatService(chatLLM, prompt)
	realtimeService := service.NewRealtimeService(cfg.OpenAI, prompt)
	adminService := service.NewAdminService(authAdmin, profileRepo, achievementRepo)

	authService, err := service.NewAuthService(cfg.Supabase, profileRepo)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	appLogger.Info("Services initialized")

	// Initialize handlers
	validator := validation.NewValidator()
	candoHandler := handler.NewCanDoHandler(analysisService, progressService, adminService, validator)
	chatHandler := handler.NewChatHandler(chatService, realtimeService, validator)
	adminHandler := handler.NewAdminHandler(adminService, validator)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Conversation and analysis routes
	app.Post("/chat_text", chatHandler.ChatText)
	app.Post("/webrtc_session", chatHandler.CreateRealtimeSession)
	app.Post("/analyze_session", candoHandler.AnalyzeSession)
	app.Get("/users/:id/cando", candoHandler.GetUserCanDo)

	// Admin routes
	adminGroup := app.Group("/admin", middleware.Protected(authService), middleware.AdminOnly(authService))
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Post("/users", adminHandler.CreateUser)
	adminGroup.Delete("/users/:id", adminHandler.DeleteUser)
	adminGroup.Post("/users/:id/reset-password", adminHandler.ResetPassword)
	adminGroup.Post("/users/:id/cando/:candoId", candoHandler.GrantCanDo)
	adminGroup.Delete("/users/:id/cando/:candoId", candoHandler.RevokeCanDo)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
