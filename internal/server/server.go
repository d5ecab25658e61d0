// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"homiee/internal/cache"
	"homiee/internal/config"
	"homiee/internal/database"
	"homiee/internal/middleware"
	"homiee/internal/models"
	"homiee/internal/repository"
	"homiee/internal/seed"
	"homiee/internal/service"
	"homiee/internal/storage"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo      repository.UserRepository
	postRepo      repository.PostRepository
	communityRepo repository.CommunityRepository
	chatRepo      repository.ChatRepository

	store storage.Store

	accountService   *service.AccountService
	profileService   *service.ProfileService
	communityService *service.CommunityService
	chatService      *service.ChatService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and bootstrap layers that establish DB/Redis themselves.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.MaxUploadSizeBytes())
	if err != nil {
		return nil, fmt.Errorf("upload store init failed: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	chatRepo := repository.NewChatRepository(db)

	prom := middleware.InitMetrics("homiee-api")
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		communityRepo:  communityRepo,
		chatRepo:       chatRepo,
		store:          store,
	}
	server.accountService = service.NewAccountService(userRepo, communityRepo, cfg)
	server.profileService = service.NewProfileService(userRepo, postRepo, communityRepo, store)
	server.communityService = service.NewCommunityService(communityRepo, userRepo)
	server.chatService = service.NewChatService(chatRepo, userRepo, store)

	// A fresh database gets the default community catalog on startup.
	if err := seed.EnsureCommunities(context.Background(), communityRepo); err != nil {
		return nil, fmt.Errorf("community catalog seeding failed: %w", err)
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and caller identity
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			// Preflight requests are never throttled; dev and test runs skip
			// throttling entirely.
			switch s.config.Env {
			case "test", "development", "stress":
				return true
			}
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
// Routes are mounted at the root so existing clients keep working unchanged.
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/", s.HealthCheck)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Stored media
	app.Static("/uploads", s.config.UploadDir)

	// Auth
	app.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	app.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Users
	app.Get("/users", s.GetUsers)
	app.Put("/users", middleware.AuthRequired, s.UpdateUsers)
	app.Get("/users/:email/communities", s.GetUserCommunities)
	app.Get("/users/:email/posts", s.GetUserPosts)
	app.Get("/users/:email", s.GetUserByEmail)
	app.Delete("/users/:email/posts/:postId", middleware.AuthRequired, s.DeletePost)

	// Posts
	app.Get("/posts", s.GetPosts)
	app.Get("/posts/user/:email", s.GetPostsForUser)
	app.Get("/posts/tag/:tag", s.GetPostsByTag)
	app.Put("/posts/:postId/like", middleware.AuthRequired, s.LikePost)
	app.Post("/posts/:postId/comment", middleware.AuthRequired,
		middleware.RateLimit(s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	app.Get("/posts/:postId", s.GetPost)

	// Communities
	app.Get("/communities", s.GetCommunities)
	app.Get("/communities/:name/chat", s.GetChat)
	app.Post("/communities/:name/chat", middleware.AuthRequired,
		middleware.RateLimit(s.redis, 15, time.Minute, "send_chat"), s.PostChatMessage)
	app.Post("/communities/:name/chat/file", middleware.AuthRequired,
		middleware.RateLimit(s.redis, 5, time.Minute, "send_chat_file"), s.PostChatFile)
	app.Post("/communities/:name/chat/audio", middleware.AuthRequired,
		middleware.RateLimit(s.redis, 5, time.Minute, "send_chat_audio"), s.PostChatAudio)
}

// HealthCheck is a simple alias for ReadinessCheck kept on the root path.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// The app degrades gracefully without Redis, so only the database gates
	// readiness.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Homiee API",
		BodyLimit: int(s.config.MaxUploadSizeBytes()) + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.ErrorContext(c.UserContext(), "Unhandled request error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	slog.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			slog.Error("Error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Error("Error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			slog.Error("Error closing redis", slog.String("error", rerr.Error()))
		}
	}

	slog.Info("Server shutdown complete")
	return nil
}
