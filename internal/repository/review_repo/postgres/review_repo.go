package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ecommerce/internal/domain"
	"ecommerce/internal/repository/review_repo"
)

type pgReviewRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewReviewRepository(db *sql.DB, l *zap.Logger) review_repo.ReviewRepository {
	return &pgReviewRepository{db: db, logger: l}
}

func (r *pgReviewRepository) Create(ctx context.Context, review *domain.Review) (int64, error) {
	query := `INSERT INTO reviews (user_id, product_id, rating, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		review.UserID, review.ProductID, review.Rating, review.Content, review.CreatedAt, review.UpdatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create review",
			zap.Int64("user_id", review.UserID),
			zap.Int64("product_id", review.ProductID),
			zap.Error(err))
		return 0, fmt.Errorf("failed to create review: %w", err)
	}
	return id, nil
}

func (r *pgReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	review := &domain.Review{}
	query := `SELECT id, user_id, product_id, rating, content, created_at, updated_at FROM reviews WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID, &review.UserID, &review.ProductID, &review.Rating, &review.Content, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		r.logger.Error("Failed to get review by ID", zap.Int64("review_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get review by ID %d: %w", id, err)
	}
	return review, nil
}

func (r *pgReviewRepository) ExistsByUserAndProduct(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1 AND product_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(&exists); err != nil {
		r.logger.Error("Failed to check review existence",
			zap.Int64("user_id", userID),
			zap.Int64("product_id", productID),
			zap.Error(err))
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}
	return exists, nil
}

func (r *pgReviewRepository) ListByProduct(ctx context.Context, productID int64, offset, limit int) ([]*domain.Review, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE product_id = $1`, productID).Scan(&total); err != nil {
		r.logger.Error("Failed to count reviews", zap.Int64("product_id", productID), zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `SELECT id, user_id, product_id, rating, content, created_at, updated_at FROM reviews
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, productID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query reviews", zap.Int64("product_id", productID), zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list reviews for product %d: %w", productID, err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		review := &domain.Review{}
		if err := rows.Scan(
			&review.ID, &review.UserID, &review.ProductID, &review.Rating, &review.Content, &review.CreatedAt, &review.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}
	return reviews, total, nil
}

func (r *pgReviewRepository) AverageRating(ctx context.Context, productID int64) (float64, error) {
	var avg sql.NullFloat64
	query := `SELECT AVG(rating) FROM reviews WHERE product_id = $1`
	if err := r.db.QueryRowContext(ctx, query, productID).Scan(&avg); err != nil {
		r.logger.Error("Failed to compute average rating", zap.Int64("product_id", productID), zap.Error(err))
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

func (r *pgReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews SET rating = $2, content = $3, updated_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, review.ID, review.Rating, review.Content, review.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update review", zap.Int64("review_id", review.ID), zap.Error(err))
		return fmt.Errorf("failed to update review %d: %w", review.ID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *pgReviewRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete review", zap.Int64("review_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete review %d: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
