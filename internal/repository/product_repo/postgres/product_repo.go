package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ecommerce/internal/domain"
	"ecommerce/internal/repository/product_repo"
)

type pgProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewProductRepository(db *sql.DB, l *zap.Logger) product_repo.ProductRepository {
	return &pgProductRepository{db: db, logger: l}
}

func (r *pgProductRepository) Create(ctx context.Context, product *domain.Product) (int64, error) {
	query := `INSERT INTO products (name, description, unit_price, stock_quantity, category, product_size, shop_displayable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.UnitPrice, product.StockQuantity,
		product.Category, product.Size, product.ShopDisplayable, product.CreatedAt, product.UpdatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create product", zap.String("name", product.Name), zap.Error(err))
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

func (r *pgProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product := &domain.Product{}
	query := `SELECT id, name, description, unit_price, stock_quantity, category, product_size, shop_displayable, created_at, updated_at
		FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.UnitPrice, &product.StockQuantity,
		&product.Category, &product.Size, &product.ShopDisplayable, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		r.logger.Error("Failed to get product by ID", zap.Int64("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return product, nil
}

func (r *pgProductRepository) List(ctx context.Context, filter product_repo.ListFilter, offset, limit int) ([]*domain.Product, int64, error) {
	where, args := buildFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count products", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, name, description, unit_price, stock_quantity, category, product_size, shop_displayable, created_at, updated_at
		FROM products%s ORDER BY id LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query products", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product := &domain.Product{}
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.UnitPrice, &product.StockQuantity,
			&product.Category, &product.Size, &product.ShopDisplayable, &product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to scan product row", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Rows error for product listing", zap.Error(err))
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}
	return products, total, nil
}

func buildFilter(filter product_repo.ListFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Size != "" {
		args = append(args, filter.Size)
		conditions = append(conditions, fmt.Sprintf("product_size = $%d", len(args)))
	}
	if filter.ShopDisplayable != nil {
		args = append(args, *filter.ShopDisplayable)
		conditions = append(conditions, fmt.Sprintf("shop_displayable = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *pgProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `UPDATE products SET name = $2, description = $3, unit_price = $4, stock_quantity = $5,
		category = $6, product_size = $7, shop_displayable = $8, updated_at = $9 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.UnitPrice, product.StockQuantity,
		product.Category, product.Size, product.ShopDisplayable, time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to update product", zap.Int64("product_id", product.ID), zap.Error(err))
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *pgProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementStockTx decrements stock only when enough remains, in a single
// statement. Concurrent checkouts of the last units serialize on the row
// update; the loser sees zero affected rows and the transaction rolls back.
func (r *pgProductRepository) DecrementStockTx(ctx context.Context, q domain.Querier, productID int64, quantity int) error {
	query := `UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = $3
		WHERE id = $1 AND stock_quantity >= $2`
	res, err := q.ExecContext(ctx, query, productID, quantity, time.Now())
	if err != nil {
		r.logger.Error("Failed to decrement product stock",
			zap.Int64("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err))
		return fmt.Errorf("failed to decrement stock for product %d: %w", productID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check decrement result: %w", err)
	}
	if rowsAffected == 0 {
		// Either the product vanished or the remaining stock is short; the
		// caller has already resolved the product, so report the stock case.
		return domain.ErrProductOutOfStock
	}
	return nil
}
