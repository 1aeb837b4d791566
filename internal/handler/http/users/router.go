package users

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ecommerce/internal/app/users"
)

func RegisterRoutes(r chi.Router, s users.UserService, l *zap.Logger) {
	handler := NewUserHandler(s, l.With(zap.String("component", "UserHTTPHandler")))

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Get("/{userID}", handler.GetUser)
	})
}
