package reviews

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ecommerce/internal/domain"
	"ecommerce/internal/repository/review_repo"
	"ecommerce/internal/repository/user_repo"
)

var ErrInvalidReview = errors.New("invalid review data")

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ProductReader is the slice of the product repository review validation
// needs.
type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, req *CreateReviewRequest) (int64, error)
	GetProductReviews(ctx context.Context, productID int64, page, size int) (*ReviewPage, error)
	UpdateReview(ctx context.Context, id int64, req *UpdateReviewRequest) (*ReviewResponse, error)
	DeleteReview(ctx context.Context, id int64) error
}

type reviewService struct {
	reviewRepo review_repo.ReviewRepository
	userRepo   user_repo.UserRepository
	products   ProductReader
	logger     *zap.Logger
}

func NewReviewService(reviewRepo review_repo.ReviewRepository, userRepo user_repo.UserRepository, products ProductReader, logger *zap.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		products:   products,
		logger:     logger,
	}
}

// CreateReview enforces one review per user per product.
func (s *reviewService) CreateReview(ctx context.Context, req *CreateReviewRequest) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return 0, domain.ErrUserNotFound
		}
		s.logger.Error("Failed to resolve user for review", zap.Int64("user_id", req.UserID), zap.Error(err))
		return 0, errors.New("internal server error")
	}
	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return 0, domain.ErrProductNotFound
		}
		s.logger.Error("Failed to resolve product for review", zap.Int64("product_id", req.ProductID), zap.Error(err))
		return 0, errors.New("internal server error")
	}

	exists, err := s.reviewRepo.ExistsByUserAndProduct(ctx, req.UserID, req.ProductID)
	if err != nil {
		s.logger.Error("Failed to check review existence", zap.Error(err))
		return 0, errors.New("internal server error")
	}
	if exists {
		return 0, domain.ErrReviewAlreadyExists
	}

	review, err := domain.NewReview(req.UserID, req.ProductID, req.Rating, req.Content)
	if err != nil {
		return 0, ErrInvalidReview
	}

	id, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		s.logger.Error("Failed to create review", zap.Error(err))
		return 0, errors.New("failed to create review")
	}

	s.logger.Info("Review created",
		zap.Int64("review_id", id),
		zap.Int64("user_id", req.UserID),
		zap.Int64("product_id", req.ProductID))
	return id, nil
}

func (s *reviewService) GetProductReviews(ctx context.Context, productID int64, page, size int) (*ReviewPage, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error("Failed to resolve product for review listing", zap.Int64("product_id", productID), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	reviewList, total, err := s.reviewRepo.ListByProduct(ctx, productID, page*size, size)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.Int64("product_id", productID), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	avg, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to compute average rating", zap.Int64("product_id", productID), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	responses := make([]*ReviewResponse, len(reviewList))
	for i, review := range reviewList {
		responses[i] = mapReviewToResponse(review)
	}
	return &ReviewPage{
		Reviews:       responses,
		AverageRating: avg,
		Page:          page,
		Size:          size,
		Total:         total,
		Last:          int64((page+1)*size) >= total,
	}, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, id int64, req *UpdateReviewRequest) (*ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		s.logger.Error("Failed to get review for update", zap.Int64("review_id", id), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	if err := review.Update(req.Rating, req.Content); err != nil {
		return nil, ErrInvalidReview
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		s.logger.Error("Failed to update review", zap.Int64("review_id", id), zap.Error(err))
		return nil, errors.New("failed to update review")
	}
	return mapReviewToResponse(review), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id int64) error {
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			return domain.ErrReviewNotFound
		}
		s.logger.Error("Failed to delete review", zap.Int64("review_id", id), zap.Error(err))
		return errors.New("failed to delete review")
	}
	s.logger.Info("Review deleted", zap.Int64("review_id", id))
	return nil
}

func mapReviewToResponse(review *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Content:   review.Content,
		CreatedAt: review.CreatedAt,
	}
}
