package cart

import (
	"context"
	"database/sql"
	"fmt"

	"routeseven-be/internal/catalog"
	"routeseven-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// GetByOwner returns the owner's cart with product and variant records
	// embedded where they still resolve, or nil when the owner has no cart.
	GetByOwner(ctx context.Context, ownerID uint) (*Cart, error)

	// Clear empties the cart's item list. Called by the workflow after a
	// successful snapshot, never by the builder.
	Clear(ctx context.Context, cartID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByOwner(ctx context.Context, ownerID uint) (*Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, subtotal_minor, created_at, updated_at
		FROM carts
		WHERE owner_id = $1
	`, ownerID).Scan(&c.ID, &c.OwnerID, &c.SubtotalMinor, &c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Sub("cart").Error("db: failed to get cart",
			zap.Uint("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			ci.product_id, ci.variant_id, ci.quantity,
			p.id, p.name, p.status, p.price_minor, p.description,
			v.id, v.product_id, v.name, v.price_minor
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		LEFT JOIN variants v ON v.id = ci.variant_id
		WHERE ci.cart_id = $1
		ORDER BY ci.position
	`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID string
			variantID sql.NullString
			quantity  int

			pID     sql.NullString
			pName   sql.NullString
			pStatus sql.NullString
			pPrice  sql.NullInt64
			pDesc   sql.NullString

			vID        sql.NullString
			vProductID sql.NullString
			vName      sql.NullString
			vPrice     sql.NullInt64
		)

		if err := rows.Scan(
			&productID, &variantID, &quantity,
			&pID, &pName, &pStatus, &pPrice, &pDesc,
			&vID, &vProductID, &vName, &vPrice,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
		}

		line := Line{Quantity: quantity}

		if pID.Valid {
			p := &catalog.Product{
				ID:         pID.String,
				Name:       pName.String,
				Status:     pStatus.String,
				PriceMinor: pPrice.Int64,
			}
			if pDesc.Valid {
				p.Description = &pDesc.String
			}
			line.Product = catalog.ResolvedProduct(p)
		} else {
			line.Product = catalog.UnresolvedProduct(productID)
		}

		if variantID.Valid {
			var ref catalog.VariantRef
			if vID.Valid {
				v := &catalog.Variant{
					ID:        vID.String,
					ProductID: vProductID.String,
					Name:      vName.String,
				}
				if vPrice.Valid {
					price := vPrice.Int64
					v.PriceMinor = &price
				}
				ref = catalog.ResolvedVariant(v)
			} else {
				ref = catalog.UnresolvedVariant(variantID.String)
			}
			line.Variant = &ref
		}

		c.Items = append(c.Items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
	}

	return &c, nil
}

func (r *repository) Clear(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1
	`, cartID)
	if err != nil {
		logger.Sub("cart").Error("db: failed to clear cart",
			zap.String("cart_id", cartID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	return nil
}
