package reviews

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ecommerce/internal/app/reviews"
	"ecommerce/internal/domain"
)

type ReviewHandler struct {
	service reviews.ReviewService
	logger  *zap.Logger
}

func NewReviewHandler(s reviews.ReviewService, l *zap.Logger) *ReviewHandler {
	return &ReviewHandler{service: s, logger: l}
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviews.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for CreateReview", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reviewID, err := h.service.CreateReview(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidReview):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrUserNotFound),
			errors.Is(err, domain.ErrProductNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrReviewAlreadyExists):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.Error("Error creating review", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int64{"review_id": reviewID})
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := h.reviewIDParam(w, r)
	if !ok {
		return
	}

	var req reviews.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for UpdateReview", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.service.UpdateReview(r.Context(), reviewID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidReview):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrReviewNotFound):
			http.Error(w, "Review not found", http.StatusNotFound)
		default:
			h.logger.Error("Error updating review", zap.Int64("review_id", reviewID), zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := h.reviewIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteReview(r.Context(), reviewID); err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			http.Error(w, "Review not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error deleting review", zap.Int64("review_id", reviewID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) reviewIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	reviewIDStr := chi.URLParam(r, "reviewID")
	reviewID, err := strconv.ParseInt(reviewIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("Invalid review ID in request", zap.String("review_id", reviewIDStr))
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return 0, false
	}
	return reviewID, true
}
