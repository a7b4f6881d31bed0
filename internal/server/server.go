package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GSKumar1109/claimsreporter/internal/api"
	"github.com/GSKumar1109/claimsreporter/internal/config"
	"github.com/GSKumar1109/claimsreporter/internal/service/workspace"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP server: the single page plus the JSON API
type Server struct {
	router *gin.Engine
	ws     *workspace.Manager
	api    *api.Handler
}

// NewServer wires the API over an already loaded workspace.
func NewServer(cfg *config.AppConfig, ws *workspace.Manager, exportDir string) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.Default(),
		ws:     ws,
		api: api.NewHandler(ws, api.Options{
			CompanyName: cfg.Report.CompanyName,
			ReportTitle: cfg.Report.ReportTitle,
			ExportDir:   exportDir,
		}),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	s.api.RegisterRoutes(s.router.Group("/api"))

	sub, _ := fs.Sub(staticFiles, "dist")
	index := func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", index)
	s.router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		index(c)
	})
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts listening.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// SaveNow persists the workspace immediately.
func (s *Server) SaveNow() error {
	return s.ws.SaveNow()
}
