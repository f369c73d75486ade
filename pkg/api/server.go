// Package api provides the REST API server for muco
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/james-see/muco/pkg/config"
	"github.com/james-see/muco/pkg/converter"
	"github.com/james-see/muco/pkg/logger"
	"github.com/james-see/muco/pkg/theory"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title muco API
// @version 1.0
// @description Pitch arithmetic, chords, scales and key signatures, plus MIDI and WAV rendering of note sequences
// @host localhost:8080
// @BasePath /api/v1

// Server holds what the handlers share: configuration, the theory tables
// and the base render options.
type Server struct {
	cfg    *config.Config
	theory *theory.Theory
	opts   converter.Options
}

// NewServer creates a server. A nil Theory selects theory.Default().
func NewServer(cfg *config.Config, th *theory.Theory) *Server {
	if th == nil {
		th = theory.Default()
	}
	return &Server{
		cfg:    cfg,
		theory: th,
		opts:   converter.OptionsFromConfig(cfg),
	}
}

// Router builds the gin engine with middleware and every route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	r.Use(RequestTracking())
	if s.cfg.SentryDSN != "" {
		r.Use(SentryMiddleware())
	}
	r.Use(RecoverWithSentry())
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/pitch", s.handlePitch)
		v1.GET("/enharmonics", s.handleEnharmonics)
		v1.GET("/interval", s.handleInterval)
		v1.GET("/invert", s.handleInvert)
		v1.GET("/transpose", s.handleTranspose)
		v1.GET("/circle", s.handleCircle)
		v1.GET("/keysignature", s.handleKeySignature)
		v1.GET("/chord", s.handleChord)
		v1.GET("/chords", listChordTypes)
		v1.GET("/scale", s.handleScale)
		v1.POST("/render/:format", s.handleRender)
		v1.POST("/convert", s.handleConvert)
		v1.GET("/formats", listFormats)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the configured port
func StartServer(cfg *config.Config) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting API server", logger.Fields{
		"addr":        addr,
		"environment": cfg.Environment,
	})
	return NewServer(cfg, nil).Router().Run(addr)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "muco",
	})
}

// badRequest reports a client error as {"error": msg}.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
