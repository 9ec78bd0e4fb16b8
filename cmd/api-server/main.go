package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JEerdekens/bookclub/database"
	"github.com/JEerdekens/bookclub/internal/api/handler"
	"github.com/JEerdekens/bookclub/internal/api/middleware"
	"github.com/JEerdekens/bookclub/internal/api/repository"
	"github.com/JEerdekens/bookclub/internal/api/service"
	"github.com/JEerdekens/bookclub/internal/cache"
	"github.com/JEerdekens/bookclub/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	gdb, err := database.OpenGorm(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Optional pgx pool for the liveness probe. Non-fatal.
	pool, err := database.ConnectPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Warn("pgx pool unavailable, /check-conn will report degraded", "error", err)
	} else {
		defer pool.Close()
	}

	progressCache, err := cache.NewProgressCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("progress cache disabled", "error", err)
	}
	statsCache := cache.NewStatsCache(progressCache.Client(), cfg.CacheTTL)

	// Repositories
	userRepo := repository.NewUserRepository(gdb)
	refreshTokenRepo := repository.NewRefreshTokenRepository(gdb)
	bookRepo := repository.NewBookRepository(gdb)
	clubRepo := repository.NewClubRepository(gdb)
	clubBookRepo := repository.NewClubBookRepository(gdb)
	locationRepo := repository.NewLocationRepository(gdb)
	progressRepo := repository.NewProgressRepository(gdb)
	ratingRepo := repository.NewRatingRepository(gdb)
	wantRepo := repository.NewWantToReadRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)

	// Services
	statsInvalidator := service.NewStatsInvalidator(userRepo, statsCache, logger)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo)
	membershipService := service.NewMembershipService(userRepo)
	bookService := service.NewBookService(bookRepo, cfg.PlaceholderCoverURL, logger)
	progressService := service.NewProgressService(progressRepo, bookRepo, progressCache, statsInvalidator, logger)
	ratingService := service.NewRatingService(ratingRepo, bookRepo, statsInvalidator)
	wantService := service.NewWantToReadService(wantRepo, bookRepo)
	commentService := service.NewCommentService(commentRepo, bookRepo)
	statsService := service.NewClubStatsService(ratingRepo, progressRepo, wantRepo, bookRepo, clubBookRepo, statsCache, logger)
	clubService := service.NewClubService(clubRepo, clubBookRepo, locationRepo, userRepo, membershipService, statsService, bookService, progressService, ratingService)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(userService)
	bookHandler := handler.NewBookHandler(bookService, wantService)
	progressHandler := handler.NewProgressHandler(progressService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	commentHandler := handler.NewCommentHandler(commentService)
	clubHandler := handler.NewClubHandler(clubService, membershipService, statsService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.CORSOrigins))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Use(limiter.Middleware())

	r.GET("/check-conn", func(c *gin.Context) {
		if pool == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authHandler.RegisterRoutes(api.Group("/auth"))

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	{
		books := authed.Group("/books")
		bookHandler.RegisterRoutes(books)
		ratingHandler.RegisterRoutes(books)
		commentHandler.RegisterBookRoutes(books)

		commentHandler.RegisterRoutes(authed.Group("/comments"))
		progressHandler.RegisterRoutes(authed.Group("/progress"))
		clubHandler.RegisterRoutes(authed.Group("/club"))
		profileHandler.RegisterRoutes(authed.Group("/profile"))
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] || allowed["*"] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
