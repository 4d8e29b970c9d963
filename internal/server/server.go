// Package server implements the taskboard REST backend used for local
// development. Every success response wraps its payload in a data envelope;
// every error carries a message envelope.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/server/storage"
)

type Config struct {
	JWTSecret []byte
	TokenTTL  time.Duration
}

type Server struct {
	repo   storage.Repository
	router *gin.Engine
	cfg    Config
	log    *slog.Logger
}

func NewServer(repo storage.Repository, cfg Config, log *slog.Logger) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if log == nil {
		log = slog.Default()
	}
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		repo:   repo,
		router: router,
		cfg:    cfg,
		log:    log,
	}

	api := router.Group("/api")
	{
		api.POST("/auth/login", s.handleLogin)
		api.POST("/auth/register", s.handleRegister)

		authed := api.Group("", s.requireAuth())
		{
			authed.GET("/auth/users", s.handleListUsers)

			authed.GET("/projects", s.handleListProjects)
			authed.POST("/projects", s.handleCreateProject)
			authed.GET("/projects/:id", s.handleGetProject)
			authed.PUT("/projects/:id", s.handleUpdateProject)
			authed.DELETE("/projects/:id", s.handleDeleteProject)

			authed.GET("/projects/:id/tasks", s.handleListTasks)
			authed.POST("/projects/:id/tasks", s.handleCreateTask)
			authed.GET("/projects/:id/tasks/:taskId", s.handleGetTask)
			authed.PUT("/projects/:id/tasks/:taskId", s.handleUpdateTask)
			authed.DELETE("/projects/:id/tasks/:taskId", s.handleDeleteTask)
		}
	}

	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) error {
	s.log.Info("listening", "addr", addr)
	return s.router.Run(addr)
}

func respondData(c *gin.Context, status int, payload any) {
	c.JSON(status, gin.H{"data": payload})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func currentUser(c *gin.Context) (storage.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return storage.User{}, false
	}
	user, ok := v.(storage.User)
	return user, ok
}
