// Package web serves the JSON API for users, tasks and background
// jobs.
package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/store"
)

// Server owns the API's dependencies. Handlers hang off it as methods
// returning http.HandlerFunc.
type Server struct {
	Store     *store.Store
	AppConfig *models.AppConfig
}

// NewServer returns a server over the given store and configuration.
func NewServer(cfg *models.AppConfig, st *store.Store) *Server {
	return &Server{Store: st, AppConfig: cfg}
}

// ListenAddr builds the host:port to bind from the configuration.
func (s *Server) ListenAddr() string {
	host := "0.0.0.0"
	port := 8000
	if s.AppConfig != nil {
		if s.AppConfig.API.Host != "" {
			host = s.AppConfig.API.Host
		}
		if s.AppConfig.API.Port > 0 {
			port = s.AppConfig.API.Port
		}
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// Router returns the configured chi router.
func (s *Server) Router() http.Handler {
	return router(s)
}

// sessionTTL reads the configured session lifetime.
func (s *Server) sessionTTL() time.Duration {
	minutes := 30
	if s.AppConfig != nil && s.AppConfig.SessionTTL > 0 {
		minutes = s.AppConfig.SessionTTL
	}
	return time.Duration(minutes) * time.Minute
}
