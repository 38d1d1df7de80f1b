package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invext/internal/config"
	"invext/internal/engine"
	"invext/internal/handler"
	"invext/internal/router"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	eng, err := engine.New(cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	// Initialize handlers
	parseH := handler.NewParseHandler(eng)
	healthH := handler.NewHealthHandler(func() bool { return eng != nil })

	// Setup router
	r := router.Setup(parseH, healthH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
