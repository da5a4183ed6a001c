package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func router(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.home())
	r.Get("/health", s.health())

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/users", s.createUser())
		api.Post("/auth/login", s.login())

		api.Group(func(priv chi.Router) {
			priv.Use(s.requireAuth)

			priv.Post("/auth/logout", s.logout())
			priv.Get("/auth/me", s.me())

			priv.Get("/users", s.listUsers())
			priv.Get("/users/{id}", s.getUser())
			priv.Put("/users/{id}", s.updateUser())
			priv.Delete("/users/{id}", s.deleteUser())

			priv.Get("/tasks", s.listTasks())
			priv.Post("/tasks", s.createTask())
			priv.Get("/tasks/{id}", s.getTask())
			priv.Put("/tasks/{id}", s.updateTask())
			priv.Delete("/tasks/{id}", s.deleteTask())
			priv.Post("/tasks/{id}/complete", s.completeTask())
			priv.Post("/tasks/{id}/uncomplete", s.uncompleteTask())

			priv.Get("/jobs", s.listJobs())
			priv.Post("/jobs", s.enqueueJob())
			priv.Get("/jobs/{id}", s.getJob())
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "")
	})

	return r
}
