// Package server exposes the coaching core over HTTP. Routing is gin
// with permissive-by-default CORS so browser frontends can talk to a
// locally running instance.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dayimpact/ecocoach/internal/chat"
	"github.com/dayimpact/ecocoach/internal/storage"
)

// apiVersion is reported by the health endpoint.
const apiVersion = "1.0.0"

const shutdownTimeout = 10 * time.Second

// Server wires the storage, chat, and coaching layers behind HTTP
// handlers.
type Server struct {
	store    *storage.Store
	sessions *chat.SessionStore
	logger   zerolog.Logger
	engine   *gin.Engine
}

// New builds a server around the given store. corsOrigins limits
// cross-origin access; empty means allow all, which suits local
// frontends.
func New(store *storage.Store, corsOrigins []string, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsCfg))

	s := &Server{
		store:    store,
		sessions: chat.NewSessionStore(),
		logger:   logger,
		engine:   engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.health)

	s.engine.POST("/actions", s.createAction)
	s.engine.POST("/actions/bulk", s.createActionsBulk)
	s.engine.GET("/actions", s.listActions)
	s.engine.DELETE("/actions/:id", s.deleteAction)

	s.engine.GET("/impact/daily", s.dailyImpact)
	s.engine.GET("/impact/weekly", s.weeklyTrend)

	s.engine.GET("/coach/daily", s.dailyCoaching)
	s.engine.GET("/coach/insight", s.weeklyInsight)

	s.engine.GET("/factors", s.listFactors)
	s.engine.GET("/factors/:category", s.listFactorsByCategory)

	s.engine.POST("/chat", s.chatMessage)
	s.engine.GET("/chat/suggestions", s.chatSuggestions)

	s.engine.GET("/report/daily", s.dailyReport)
	s.engine.GET("/report/weekly", s.weeklyReport)
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info().
		Str("component", "server").
		Str("addr", addr).
		Msg("HTTP server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
