package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/pkg/errors"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

const productColumns = `id, name, team, price, image, images, description, stock, status, category, sizes, created_at, updated_at`

func (r *productRepository) scanProduct(scan func(dest ...interface{}) error) (*domain.Product, error) {
	var p domain.Product
	err := scan(
		&p.ID,
		&p.Name,
		&p.Team,
		&p.Price,
		&p.Image,
		pq.Array(&p.Images),
		&p.Description,
		&p.Stock,
		&p.Status,
		&p.Category,
		pq.Array(&p.Sizes),
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := r.scanProduct(rows.Scan)
		if err != nil {
			r.logger.Error("Failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := r.scanProduct(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, team, price, image, images, description, stock, status, category, sizes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Team,
		product.Price,
		product.Image,
		pq.Array(product.Images),
		product.Description,
		product.Stock,
		product.Status,
		product.Category,
		pq.Array(product.Sizes),
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, team = $3, price = $4, image = $5, images = $6, description = $7,
			stock = $8, status = $9, category = $10, sizes = $11, updated_at = $12
		WHERE id = $1
	`

	product.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Team,
		product.Price,
		product.Image,
		pq.Array(product.Images),
		product.Description,
		product.Stock,
		product.Status,
		product.Category,
		pq.Array(product.Sizes),
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update product", zap.Error(err))
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.String()}
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Error(err))
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	return nil
}
