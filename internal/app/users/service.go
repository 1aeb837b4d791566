package users

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ecommerce/internal/domain"
	"ecommerce/internal/repository/user_repo"
)

var ErrInvalidUser = errors.New("invalid user data")

type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (int64, error)
	GetUser(ctx context.Context, id int64) (*UserResponse, error)
}

type userService struct {
	userRepo user_repo.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo user_repo.UserRepository, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (int64, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return 0, ErrInvalidUser
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.String("email", req.Email), zap.Error(err))
		return 0, errors.New("internal server error")
	}
	if exists {
		s.logger.Debug("Rejecting registration with duplicate email", zap.String("email", req.Email))
		return 0, domain.ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return 0, errors.New("internal server error")
	}

	user, err := domain.NewUser(req.Name, req.Email, string(hash), req.PhoneNumber, domain.UserRole(req.Role))
	if err != nil {
		return 0, ErrInvalidUser
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		s.logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		return 0, errors.New("failed to create user")
	}

	s.logger.Info("User registered", zap.Int64("user_id", id))
	return id, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error("Failed to get user", zap.Int64("user_id", id), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return &UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
	}, nil
}
