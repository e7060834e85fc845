package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskman/api/internal/core/domain"
	"github.com/taskman/api/internal/core/ports"
)

func NewHandler(authHandler *AuthHandler, userHandler *UserHandler, taskHandler *TaskHandler, authService ports.AuthService, devLogging bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if devLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/forgotPassword", authHandler.ForgotPassword)
			r.Patch("/resetPassword/{token}", authHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(Authenticator(authService))
				r.Patch("/updatePassword", authHandler.UpdatePassword)
				r.Get("/me", userHandler.GetMe)
				r.With(RequireRoles(domain.RoleAdmin)).Get("/", userHandler.List)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(Authenticator(authService))

			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)

			r.Route("/{taskId}", func(r chi.Router) {
				r.Get("/", taskHandler.Get)
				r.Patch("/", taskHandler.Update)
				r.Delete("/", taskHandler.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "can't find "+r.URL.Path+" on this server")
	})

	return r
}
