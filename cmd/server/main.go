package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lirik/internal/config"
	"lirik/internal/db"
	"lirik/internal/handler"
	transport "lirik/internal/http"
	"lirik/internal/logger"
	"lirik/internal/network"
	"lirik/internal/repository"
	"lirik/internal/scheduler"
	"lirik/internal/service"
	"lirik/internal/service/ai"
	"lirik/internal/snowflake"
)

// @title Lirik API
// @version 1.0
// @description Lyrics search, cleanup and translation service.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(1); err != nil {
		log.Fatalf("init snowflake: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	settingsRepo := repository.NewSettingsRepository(dbConn)
	credentialRepo := repository.NewCredentialRepository(dbConn)
	songRepo := repository.NewSongRepository(dbConn)
	translationRepo := repository.NewTranslationRepository(dbConn)

	settingsService := service.NewSettingsService(settingsRepo, credentialRepo)
	factory := network.NewClientFactory(settingsService)

	rateLimiter := ai.NewRateLimiter(ai.DefaultRateLimit)
	if aiSettings, err := settingsService.GetAISettings(context.Background()); err == nil {
		rateLimiter.SetLimit(aiSettings.RateLimit)
	}

	authService := service.NewAuthService(settingsRepo)
	searchService := service.NewSearchService(factory)
	extractService := service.NewExtractService(factory)
	lyricsService := service.NewLyricsService(songRepo, searchService, extractService)
	translateService := service.NewTranslateService(songRepo, translationRepo, settingsService, rateLimiter)
	discoveryService := service.NewDiscoveryService(settingsService, factory)

	authHandler := handler.NewAuthHandler(authService)
	songsHandler := handler.NewSongsHandler(lyricsService)
	lyricsHandler := handler.NewLyricsHandler(lyricsService, translateService, extractService)
	settingsHandler := handler.NewSettingsHandler(settingsService, translateService, rateLimiter)
	discoveryHandler := handler.NewDiscoveryHandler(discoveryService)

	router := transport.NewRouter(
		authService,
		authHandler,
		songsHandler,
		lyricsHandler,
		settingsHandler,
		discoveryHandler,
		cfg.StaticDir,
	)

	refreshInterval := time.Duration(service.DefaultDiscoveryRefreshMinutes) * time.Minute
	if discoverySettings, err := settingsService.GetDiscoverySettings(context.Background()); err == nil {
		refreshInterval = time.Duration(discoverySettings.RefreshMinutes) * time.Minute
	}
	sched := scheduler.New(discoveryService, refreshInterval)
	sched.Start()

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		sched.Stop()
		os.Exit(0)
	}()

	if err := router.Start(cfg.Addr); err != nil {
		log.Fatalf("start server: %v", err)
	}
}
