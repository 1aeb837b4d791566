package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ecommerce/internal/app/users"
	"ecommerce/internal/domain"
)

type UserHandler struct {
	service users.UserService
	logger  *zap.Logger
}

func NewUserHandler(s users.UserService, l *zap.Logger) *UserHandler {
	return &UserHandler{service: s, logger: l}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for Register", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidUser):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrEmailAlreadyUsed):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.Error("Error registering user", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int64{"user_id": userID})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("Invalid user ID in GetUser request", zap.String("user_id", userIDStr))
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	res, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error getting user", zap.Int64("user_id", userID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
