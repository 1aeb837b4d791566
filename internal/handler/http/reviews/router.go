package reviews

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ecommerce/internal/app/reviews"
)

func RegisterRoutes(r chi.Router, s reviews.ReviewService, l *zap.Logger) {
	handler := NewReviewHandler(s, l.With(zap.String("component", "ReviewHTTPHandler")))

	r.Route("/reviews", func(r chi.Router) {
		r.Post("/", handler.CreateReview)
		r.Put("/{reviewID}", handler.UpdateReview)
		r.Delete("/{reviewID}", handler.DeleteReview)
	})
}
