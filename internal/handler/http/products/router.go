package products

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ecommerce/internal/app/products"
	"ecommerce/internal/app/reviews"
)

func RegisterRoutes(r chi.Router, s products.ProductService, rs reviews.ReviewService, l *zap.Logger) {
	handler := NewProductHandler(s, rs, l.With(zap.String("component", "ProductHTTPHandler")))

	r.Route("/products", func(r chi.Router) {
		r.Post("/", handler.CreateProduct)
		r.Get("/", handler.ListProducts)
		r.Get("/{productID}", handler.GetProduct)
		r.Put("/{productID}", handler.UpdateProduct)
		r.Delete("/{productID}", handler.DeleteProduct)
		r.Get("/{productID}/reviews", handler.GetProductReviews)
	})
}
