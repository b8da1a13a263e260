package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ocrserver/extraction"
	"ocrserver/internal/config"
	"ocrserver/server"
	"ocrserver/units"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	registry := units.Default()
	pipeline := extraction.NewPipeline(registry, cfg.MatchMinScore)

	srv := server.NewServer(cfg, registry, pipeline)

	// Корректная остановка по сигналу
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
