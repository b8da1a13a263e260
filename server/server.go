// Package server предоставляет HTTP API извлечения значений измерений
// из уже распознанного текста.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"ocrserver/extraction"
	"ocrserver/internal/config"
	"ocrserver/units"
)

// Server HTTP сервер API извлечения
type Server struct {
	config     *config.Config
	registry   *units.Registry
	pipeline   *extraction.Pipeline
	httpServer *http.Server
}

// NewServer создает новый сервер
func NewServer(cfg *config.Config, registry *units.Registry, pipeline *extraction.Pipeline) *Server {
	return &Server{
		config:   cfg,
		registry: registry,
		pipeline: pipeline,
	}
}

// Router собирает gin-маршрутизатор со всеми middleware и маршрутами
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/extraction/value", s.handleExtractValue)
		api.POST("/extraction/units", s.handleExtractUnits)
	}

	return router
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting HTTP server on %s...", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown корректно останавливает сервер
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
