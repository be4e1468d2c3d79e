package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/tasknest-api/internal/cache"
	"github.com/yukikurage/tasknest-api/internal/config"
	"github.com/yukikurage/tasknest-api/internal/constants"
	"github.com/yukikurage/tasknest-api/internal/database"
	"github.com/yukikurage/tasknest-api/internal/handlers"
	"github.com/yukikurage/tasknest-api/internal/middleware"
	"github.com/yukikurage/tasknest-api/internal/models"
	"github.com/yukikurage/tasknest-api/internal/repository"
	"github.com/yukikurage/tasknest-api/internal/services"
	"github.com/yukikurage/tasknest-api/internal/taskview"
	"github.com/yukikurage/tasknest-api/internal/validation"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	categories, err := models.NewCategorySet(cfg.Categories)
	if err != nil {
		log.Fatalf("Invalid TASK_CATEGORIES: %v", err)
	}

	if err := validation.Register(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	// Dashboard cache; failures are logged and bypassed at request time
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	statsCache := cache.New(rdb, "tasknest:", cfg.StatsCacheTTL)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := statsCache.Ping(pingCtx); err != nil {
		log.Printf("[main] Warning: Redis unavailable at %s, dashboards will not be cached: %v", cfg.RedisAddr(), err)
	}
	cancel()

	// Initialize AI service
	var drafter services.TaskDrafter
	if cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(cfg.OpenAIAPIKey)
	}

	taskService := services.NewTaskService(
		repository.NewTaskRepository(db),
		categories,
		taskview.SystemClock{Location: time.Local},
		statsCache,
		drafter,
	)
	authService := services.NewAuthService(repository.NewUserRepository(db), taskService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		"",              // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/health", healthHandler(db, statsCache))

	handlers.RegisterRoutes(r, handlers.NewAuthHandler(authService), handlers.NewTaskHandler(taskService), taskService)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"tasknest-api": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return shutdown(ctx, srv, statsCache, db)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// shutdown drains HTTP traffic before closing the stores it depends on.
func shutdown(ctx context.Context, srv *http.Server, statsCache *cache.Cache, db *gorm.DB) error {
	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := statsCache.Close(); err != nil {
		errs = append(errs, err)
	}
	if sqlDB, err := db.DB(); err != nil {
		errs = append(errs, err)
	} else if err := sqlDB.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func healthHandler(db *gorm.DB, statsCache *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "unavailable"
		}
		cacheStatus := "ok"
		if statsCache.Ping(ctx) != nil {
			cacheStatus = "unavailable"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":  dbStatus,
			"cache":   cacheStatus,
			"message": "TaskNest API is running",
		})
	}
}
