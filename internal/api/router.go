package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chatterly/chat-service/internal/api/handler"
	"github.com/chatterly/chat-service/internal/api/middleware"
	"github.com/chatterly/chat-service/internal/core/service"
	redissessions "github.com/chatterly/chat-service/internal/infrastructure/db/redis"
	"github.com/chatterly/chat-service/internal/infrastructure/db/sqlite"
)

// Config carries the router's process-wide settings.
type Config struct {
	JWTSecret  string
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; session revocation then falls back to an in-process store.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("chatterly"))

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)

	var revoked service.RevocationStore
	if rdb != nil {
		revoked = redissessions.NewRevokedSessions(rdb)
	} else {
		revoked = service.NewMemoryRevocationStore()
	}

	credentialService := service.NewCredentialService(userRepo, cfg.Logger)
	conversationService := service.NewConversationService(messageRepo, userRepo, cfg.Logger)
	sessionService := service.NewSessionService(cfg.JWTSecret, cfg.SessionTTL, revoked)

	authHandler := handler.NewAuthHandler(credentialService, sessionService, cfg.SessionTTL)
	chatHandler := handler.NewChatHandler(credentialService, conversationService)
	sessionMiddleware := middleware.Session(sessionService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, sessionMiddleware)

	// --- Chat routes (session required) ---
	e.GET("/", chatHandler.Index, sessionMiddleware)
	e.GET("/chat", chatHandler.Conversation, sessionMiddleware)
	e.POST("/chat/messages", chatHandler.SendMessage, sessionMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
