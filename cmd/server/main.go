package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cms-admin/auth"
	"cms-admin/internal/block"
	"cms-admin/internal/component"
	"cms-admin/internal/config"
	"cms-admin/internal/db"
	"cms-admin/internal/logger"
	"cms-admin/internal/middleware"
	"cms-admin/internal/page"
	"cms-admin/internal/router"
	"cms-admin/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Setup(cfg.Environment, cfg.LogLevel)

	// Connect to database
	if err := db.ConnectDb(cfg); err != nil {
		log.Fatal().Err(err).Msg("error connecting to db")
	}
	defer db.CloseDb()

	// Migrate database schema
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating db")
	}

	// Initialize Redis
	redis.InitRedis(context.Background(), cfg.RedisAddress)
	defer redis.CloseRedis()
	cache := redis.NewCache(redis.RedisClient, cfg.CatalogCacheTTL)

	// Initialize repository
	pageRepo := page.NewRepository(db.AppDb)
	blockRepo := block.NewRepository(db.AppDb)
	componentRepo := component.NewRepository(db.AppDb)
	// Initialize service
	pageService := page.NewService(pageRepo)
	blockService := block.NewService(blockRepo, pageRepo)
	componentService := component.NewService(componentRepo, cache)
	// Initialize handler
	pageHandler := page.NewHandler(pageService)
	blockHandler := block.NewHandler(blockService)
	componentHandler := component.NewHandler(componentService)

	if cfg.Environment == "development" {
		// Seed database with initial data (for development)
		db.SeedData(context.Background(), componentService)
		if token, err := auth.GenerateJWT([]byte(cfg.JWTSecret), "dev", 24*time.Hour); err == nil {
			log.Info().Str("token", token).Msg("development API token, valid for 24h")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}

	if cfg.Environment == "development" {
		// Allow all origins in development
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.FrontendAddress}
	}
	engine.Use(cors.New(corsConfig))
	engine.Use(middleware.ErrorHandler())

	authMiddleware := &middleware.Auth{Secret: []byte(cfg.JWTSecret)}
	api := engine.Group("/", authMiddleware.AuthMiddleWare())

	router.RegisterRoutes(api, router.Handlers{
		Pages:      pageHandler,
		Blocks:     blockHandler,
		Components: componentHandler,
	})

	// Server configuration
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: engine.Handler(),
	}

	// Start server
	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("Server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Server shutdown complete")
}
