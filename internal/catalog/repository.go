package catalog

import (
	"context"
	"database/sql"

	"routeseven-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetProductByID(ctx context.Context, id string) (*Product, error)
	GetVariantByID(ctx context.Context, id string) (*Variant, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetProductByID returns the product with its variants embedded, or nil when
// the id does not resolve.
func (r *repository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, status, price_minor, description
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Status, &p.PriceMinor, &p.Description)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Sub("catalog").Error("db: failed to get product",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, price_minor
		FROM variants
		WHERE product_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceMinor); err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &p, nil
}

// GetVariantByID returns the variant, or nil when the id does not resolve.
func (r *repository) GetVariantByID(ctx context.Context, id string) (*Variant, error) {
	var v Variant
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product_id, name, price_minor
		FROM variants
		WHERE id = $1
	`, id).Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceMinor)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Sub("catalog").Error("db: failed to get variant",
			zap.String("variant_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	return &v, nil
}
