// Package server wires the repositories, the assistant pipeline and the
// HTTP surface into one gin engine. The with-auth and without-auth
// deployments are the same engine; auth.enabled toggles the middleware.
package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jrnhq/jrn/internal/assistant"
	"github.com/jrnhq/jrn/internal/config"
	"github.com/jrnhq/jrn/internal/repository"
	"github.com/jrnhq/jrn/internal/server/handlers"
)

// Server is the HTTP API for the journal.
type Server struct {
	engine *gin.Engine
	cfg    *config.Config
	db     *repository.Database
	log    zerolog.Logger
}

// New builds the full dependency graph: repositories over the injected
// database, the completion gateway, the chat service and every route.
func New(cfg *config.Config, db *repository.Database, gateway assistant.CompletionGateway, log zerolog.Logger) *Server {
	entries := repository.NewEntryRepository(db.DB)
	history := repository.NewChatRepository(db.DB)
	chat := assistant.NewService(entries, history, gateway, log)

	entryHandler := handlers.NewEntryHandler(entries, log)
	chatHandler := handlers.NewChatHandler(chat, history, log)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(log))

	engine.GET("/healthz", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	})

	if cfg.Auth.Enabled {
		authHandler := handlers.NewAuthHandler(cfg.Auth, log)
		engine.POST("/api/login", authHandler.Login)
		engine.POST("/api/logout", authHandler.Logout)
	}

	api := engine.Group("/api")
	if cfg.Auth.Enabled {
		api.Use(Auth(cfg.Auth))
	}
	{
		api.GET("/entries", entryHandler.List)
		api.POST("/entries", entryHandler.Create)
		api.PUT("/entries/:id", entryHandler.Update)
		api.DELETE("/entries/:id", entryHandler.Delete)

		api.GET("/chat/history", chatHandler.History)
		api.DELETE("/chat/history", chatHandler.Clear)
		api.POST("/chat", chatHandler.Send)
	}

	if cfg.Server.StaticDir != "" {
		registerStatic(engine, cfg.Server.StaticDir)
	}

	return &Server{engine: engine, cfg: cfg, db: db, log: log}
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	s.log.Info().Str("addr", s.cfg.ListenAddr()).Msg("server listening")
	return s.engine.Run(s.cfg.ListenAddr())
}

// registerStatic serves the web UI when a static dir is configured. Unknown
// non-API paths fall through to index.html for the SPA router.
func registerStatic(engine *gin.Engine, dir string) {
	engine.Static("/assets", filepath.Join(dir, "assets"))
	engine.StaticFile("/login", filepath.Join(dir, "login.html"))
	engine.NoRoute(func(c *gin.Context) {
		c.File(filepath.Join(dir, "index.html"))
	})
}
