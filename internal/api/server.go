package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP server.
type Server struct {
	srv *http.Server
}

// Router wires routes and middleware into a gin engine.
func Router(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", h.Health)
	router.GET("/api/leads", h.Leads)
	router.GET("/leads", h.Leads) // legacy alias
	router.GET("/enrich", h.Enrich)
	router.DELETE("/api/leads/cache", h.InvalidateCache)

	router.NoRoute(func(c *gin.Context) {
		errResponse(c, http.StatusNotFound, "Not found")
	})

	return router
}

// NewServer wires routes and returns a ready-to-start Server.
func NewServer(addr string, h *Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      Router(h),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute, // enrichment crawls can be slow
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins listening and blocks until the server stops.
func (s *Server) Start() error {
	log.Printf("dealer-api listening on %s", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down with the given context.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// loggingMiddleware logs each request with method, path, status and duration.
func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
