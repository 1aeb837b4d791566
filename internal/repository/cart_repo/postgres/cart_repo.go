package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ecommerce/internal/domain"
	"ecommerce/internal/repository/cart_repo"
)

type pgCartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewCartRepository(db *sql.DB, l *zap.Logger) cart_repo.CartRepository {
	return &pgCartRepository{db: db, logger: l}
}

func (r *pgCartRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart := &domain.Cart{}
	query := `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		r.logger.Error("Failed to get cart for user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get cart for user %d: %w", userID, err)
	}

	linesQuery := `SELECT id, product_id, quantity, subtotal FROM cart_lines WHERE cart_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, linesQuery, cart.ID)
	if err != nil {
		r.logger.Error("Failed to query cart lines", zap.Int64("cart_id", cart.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to get cart lines for cart %d: %w", cart.ID, err)
	}
	defer rows.Close()

	cart.Lines = []domain.CartLine{}
	for rows.Next() {
		line := domain.CartLine{}
		if err := rows.Scan(&line.ID, &line.ProductID, &line.Quantity, &line.Subtotal); err != nil {
			r.logger.Error("Failed to scan cart line", zap.Int64("cart_id", cart.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return cart, nil
}

func (r *pgCartRepository) Save(ctx context.Context, cart *domain.Cart) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction for cart save", zap.Int64("user_id", cart.UserID), zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
			if err != nil {
				r.logger.Error("Failed to commit cart save transaction", zap.Int64("user_id", cart.UserID), zap.Error(err))
			}
		}
	}()

	if cart.ID == 0 {
		insertCart := `INSERT INTO carts (user_id, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`
		if err = tx.QueryRowContext(ctx, insertCart, cart.UserID, cart.CreatedAt, cart.UpdatedAt).Scan(&cart.ID); err != nil {
			return fmt.Errorf("tx failed to create cart: %w", err)
		}
	} else {
		updateCart := `UPDATE carts SET updated_at = $2 WHERE id = $1`
		if _, err = tx.ExecContext(ctx, updateCart, cart.ID, cart.UpdatedAt); err != nil {
			return fmt.Errorf("tx failed to touch cart: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cart.ID); err != nil {
		return fmt.Errorf("tx failed to clear cart lines: %w", err)
	}

	insertLine := `INSERT INTO cart_lines (cart_id, product_id, quantity, subtotal) VALUES ($1, $2, $3, $4)`
	for _, line := range cart.Lines {
		if _, err = tx.ExecContext(ctx, insertLine, cart.ID, line.ProductID, line.Quantity, line.Subtotal); err != nil {
			return fmt.Errorf("tx failed to insert cart line for product %d: %w", line.ProductID, err)
		}
	}

	return err
}
