package carts

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ecommerce/internal/app/carts"
)

func RegisterRoutes(r chi.Router, s carts.CartService, l *zap.Logger) {
	handler := NewCartHandler(s, l.With(zap.String("component", "CartHTTPHandler")))

	r.Route("/carts", func(r chi.Router) {
		r.Post("/update-qty", handler.UpdateLineQuantity)
		r.Delete("/delete-product", handler.RemoveLine)
		r.Get("/{userID}", handler.GetCart)
	})
}
