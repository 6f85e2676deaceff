package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lucasfdcampos/dealer-api/internal/api"
	"github.com/lucasfdcampos/dealer-api/internal/cache"
	"github.com/lucasfdcampos/dealer-api/internal/config"
	"github.com/lucasfdcampos/dealer-api/internal/enrich"
	"github.com/lucasfdcampos/dealer-api/internal/pipeline"
	"github.com/lucasfdcampos/dealer-api/internal/search"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if !cfg.HasSearchCredentials() {
		log.Printf("WARN: GOOGLE_API_KEY/GOOGLE_CSE_ID not set — /api/leads will return 500")
	}

	// ─── Redis (optional) ─────────────────────────────────────────────────────
	var redisClient *cache.Client
	if cfg.RedisAddr != "" {
		rc := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx5s, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rc.Ping(ctx5s); err != nil {
			log.Printf("WARN: Redis not available (%v) — responses will not be cached", err)
		} else {
			redisClient = rc
			log.Printf("Redis connected: %s", cfg.RedisAddr)
		}
		cancel()
	}

	// ─── Pipeline collaborators ───────────────────────────────────────────────
	searcher := search.New(cfg.GoogleAPIKey, cfg.GoogleCSEID, cfg.SearchTimeout())
	enricher := enrich.New(cfg.FetchTimeout(), cfg.EnrichWorkers)

	deps := pipeline.Deps{
		Search: searcher,
		Enrich: enricher,
		Redis:  redisClient,
	}

	// ─── HTTP server ──────────────────────────────────────────────────────────
	handler := api.NewHandler(cfg, deps, enricher)
	srv := api.NewServer(cfg.Addr, handler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("bye")
}
