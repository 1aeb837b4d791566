package orders

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ecommerce/internal/app/orders"
)

func RegisterRoutes(r chi.Router, s orders.OrderService, l *zap.Logger) {
	handler := NewOrderHandler(s, l.With(zap.String("component", "OrderHTTPHandler")))

	r.Route("/orders", func(r chi.Router) {
		r.Post("/verify/{paymentID}", handler.PlaceOrder)
		r.Get("/", handler.ListOrders)
		r.Get("/{orderID}", handler.GetOrder)
		r.Delete("/{orderID}", handler.DeleteOrder)
		r.Get("/{orderID}/payment", handler.GetOrderPayment)
	})
}
