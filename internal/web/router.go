// Package web serves the browser host: a page with a canvas renderer and a
// WebSocket per table, on top of the shared table server.
package web

import (
	_ "embed"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tomz197/pinball/internal/loop/server"
	"github.com/tomz197/pinball/internal/pinball"
)

//go:embed static/index.html
var indexPage string

// Tables is the table server as the web host uses it.
type Tables interface {
	server.GameServer
	Layout() pinball.Layout
}

// Options configures the router.
type Options struct {
	AllowedOrigins []string      // CORS and WebSocket origins; empty allows all
	SSHHost        string        // Shown on the page as the terminal alternative
	FadeDuration   time.Duration // Consumed bumper icon fade-in
}

// Handler serves the page, the API and table sockets.
type Handler struct {
	tables    Tables
	opts      Options
	startedAt time.Time
	page      string
}

// NewHandler creates a handler over tables.
func NewHandler(tables Tables, opts Options) *Handler {
	return &Handler{
		tables:    tables,
		opts:      opts,
		startedAt: time.Now(),
		page:      strings.ReplaceAll(indexPage, "{{.SSHHost}}", opts.SSHHost),
	}
}

// Router builds the gin engine with logging, recovery and CORS.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(h.corsConfig()))

	router.GET("/", h.Index)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.HealthCheck)
		v1.GET("/layout", h.GetLayout)
		v1.GET("/table/ws", h.HandleWebSocket)
	}
	return router
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Accept", "Cache-Control",
		},
		MaxAge: 12 * time.Hour, // Cache preflight responses
	}
	if len(h.opts.AllowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = h.opts.AllowedOrigins
	}
	return cfg
}

// Index serves the game page.
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.page))
}

// HealthCheck reports liveness and the number of open tables.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "pinball",
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
		"players": h.tables.Players(),
	})
}

// GetLayout returns the static table geometry.
func (h *Handler) GetLayout(c *gin.Context) {
	c.JSON(http.StatusOK, h.tables.Layout())
}

// originAllowed checks a WebSocket Origin header against the allowed list.
func (h *Handler) originAllowed(r *http.Request) bool {
	if len(h.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // Non-browser clients
	}
	for _, allowed := range h.opts.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}
