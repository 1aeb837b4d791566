package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ecommerce/internal/domain"
	"ecommerce/internal/repository/order_repo"
	"ecommerce/internal/repository/outbox_repo"
	"ecommerce/internal/repository/payment_repo"
)

// StockDecrementer is the slice of the product repository the order commit
// needs: the conditional, never-below-zero stock update.
type StockDecrementer interface {
	DecrementStockTx(ctx context.Context, q domain.Querier, productID int64, quantity int) error
}

type pgOrderRepository struct {
	db       *sql.DB
	stock    StockDecrementer
	payments payment_repo.PaymentRepository
	outbox   outbox_repo.OutboxRepository
	logger   *zap.Logger
}

func NewOrderRepository(db *sql.DB, stock StockDecrementer, payments payment_repo.PaymentRepository, outbox outbox_repo.OutboxRepository, l *zap.Logger) order_repo.OrderRepository {
	return &pgOrderRepository{db: db, stock: stock, payments: payments, outbox: outbox, logger: l}
}

func (r *pgOrderRepository) CommitPlacedOrder(ctx context.Context, order *domain.Order, payment *domain.Payment) (_ int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction for order commit", zap.Int64("user_id", order.UserID), zap.Error(err))
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Panic during order commit, rolling back", zap.Int64("user_id", order.UserID))
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			r.logger.Warn("Rolling back order commit", zap.Int64("user_id", order.UserID), zap.Error(err))
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
			if err != nil {
				r.logger.Error("Failed to commit order transaction", zap.Int64("order_id", order.ID), zap.Error(err))
			}
		}
	}()

	orderQuery := `INSERT INTO orders (user_id, total_price, status, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err = tx.QueryRowContext(ctx, orderQuery, order.UserID, order.TotalPrice, order.Status, order.CreatedAt).Scan(&order.ID); err != nil {
		err = fmt.Errorf("tx failed to create order: %w", err)
		return 0, err
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if err = r.stock.DecrementStockTx(ctx, tx, order.Items[i].ProductID, order.Items[i].Quantity); err != nil {
			return 0, err
		}
	}

	if err = r.bulkInsertItems(ctx, tx, order.Items); err != nil {
		return 0, err
	}

	payment.OrderID = order.ID
	if err = r.payments.CreateTx(ctx, tx, payment); err != nil {
		return 0, err
	}

	var msg *domain.OutboxMessage
	msg, err = domain.NewOrderPlacedMessage(order, payment.PaymentID)
	if err != nil {
		return 0, err
	}
	if err = r.outbox.InsertTx(ctx, tx, msg); err != nil {
		return 0, err
	}

	return order.ID, err
}

func (r *pgOrderRepository) bulkInsertItems(ctx context.Context, q domain.Querier, items []domain.OrderItem) error {
	if len(items) == 0 {
		return errors.New("order has no items")
	}

	placeholders := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items)*4)
	for i, item := range items {
		base := i * 4
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, item.OrderID, item.ProductID, item.Quantity, item.Price)
	}

	query := `INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ` + strings.Join(placeholders, ", ")
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("tx failed to bulk insert order items: %w", err)
	}
	return nil
}

func (r *pgOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order := &domain.Order{}
	query := `SELECT id, user_id, total_price, status, created_at FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.UserID, &order.TotalPrice, &order.Status, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		r.logger.Error("Failed to get order by ID", zap.Int64("order_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}

	items, err := r.itemsForOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *pgOrderRepository) itemsForOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to query order items", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("failed to get items for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		item := domain.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

func (r *pgOrderRepository) List(ctx context.Context, offset, limit int) ([]*domain.Order, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		r.logger.Error("Failed to count orders", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `SELECT id, user_id, total_price, status, created_at FROM orders ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query orders", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.TotalPrice, &order.Status, &order.CreatedAt); err != nil {
			r.logger.Error("Failed to scan order row", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	for _, order := range orders {
		items, err := r.itemsForOrder(ctx, order.ID)
		if err != nil {
			return nil, 0, err
		}
		order.Items = items
	}
	return orders, total, nil
}

// Delete removes the order; its items go with it through the foreign key
// cascade. Payment rows stay behind as audit records.
func (r *pgOrderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete order", zap.Int64("order_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
