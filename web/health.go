package web

import (
	"net/http"
	"time"
)

// home greets API consumers who land on the root path.
func (s *Server) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := "go-cli api"
		if s.AppConfig != nil && s.AppConfig.AppName != "" {
			name = s.AppConfig.AppName
		}
		writeData(w, http.StatusOK, map[string]string{
			"app":    name,
			"api":    "/api/v1",
			"health": "/health",
		})
	}
}

// health reports liveness, including a database round trip.
func (s *Server) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if _, err := s.Store.CountUsers(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		writeData(w, code, map[string]string{
			"status": status,
			"time":   time.Now().Format(timeLayout),
		})
	}
}
