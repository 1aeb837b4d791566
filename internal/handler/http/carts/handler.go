package carts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ecommerce/internal/app/carts"
	"ecommerce/internal/domain"
)

type CartHandler struct {
	service carts.CartService
	logger  *zap.Logger
}

func NewCartHandler(s carts.CartService, l *zap.Logger) *CartHandler {
	return &CartHandler{service: s, logger: l}
}

func (h *CartHandler) UpdateLineQuantity(w http.ResponseWriter, r *http.Request) {
	var req carts.UpdateCartLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for UpdateLineQuantity", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateLineQuantity(r.Context(), &req); err != nil {
		h.writeCartError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	var req carts.RemoveCartLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for RemoveLine", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveLine(r.Context(), &req); err != nil {
		h.writeCartError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("Invalid user ID in GetCart request", zap.String("user_id", userIDStr))
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	res, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error getting cart", zap.Int64("user_id", userID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, carts.ErrInvalidCartLine):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrProductOutOfStock):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("Error updating cart", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
