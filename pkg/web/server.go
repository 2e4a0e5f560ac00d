// Package web provides an HTTP server with routing and middleware.
// It uses Gin framework for high-performance web handling.
package web

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/logger"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

// Server represents the web server
type Server struct {
	engine     *gin.Engine
	webhookURL string
}

var (
	server *Server
)

// Init initializes the global web server
func Init(webhookURL string) *Server {
	server = NewServer(webhookURL)
	return server
}

// Get returns the global web server
func Get() *Server {
	return server
}

// NewServer creates a new web server
func NewServer(webhookURL string) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:     engine,
		webhookURL: webhookURL,
	}

	// Apply middlewares
	s.engine.Use(s.logsMiddleware())

	// Set up error handlers
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "La ruta solicitada no existe.",
		})
	})

	return s
}

// Engine returns the underlying Gin engine
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Group creates a route group on the underlying engine
func (s *Server) Group(path string) *gin.RouterGroup {
	return s.engine.Group(path)
}

// logsMiddleware logs all incoming requests and mirrors them to the webhook
func (s *Server) logsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Info(fmt.Sprintf("[LOG] Nueva solicitud: %s %s", c.Request.Method, c.Request.URL.Path), "WebServer")

		go s.sendLogToWebhook(c.Request.Method, c.Request.URL.Path, c.ClientIP())

		c.Next()
	}
}

// sendLogToWebhook sends a request log line to the configured Discord webhook
func (s *Server) sendLogToWebhook(method, path, clientIP string) {
	if s.webhookURL == "" {
		return
	}

	payload := map[string]interface{}{
		"content": fmt.Sprintf("🌐 `%s %s` desde `%s`", method, path, clientIP),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequest("POST", s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
}

// StartAsync starts the web server in a background goroutine
func (s *Server) StartAsync(port string) {
	go func() {
		logger.System("Servidor web escuchando en el puerto "+port, "WebServer")
		if err := s.engine.Run(":" + port); err != nil {
			logger.Error(fmt.Sprintf("Error en el servidor web: %v", err), "WebServer")
		}
	}()
}
