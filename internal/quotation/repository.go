package quotation

import (
	"context"
	"database/sql"
	"fmt"

	"routeseven-be/internal/catalog"
	"routeseven-be/internal/logger"
	"routeseven-be/internal/money"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	// Create persists the aggregate and its line items in one transaction.
	// Item order is preserved via the position column.
	Create(ctx context.Context, q *Quotation) error

	// GetByID returns the quotation with product records embedded where they
	// still resolve; items whose product has since disappeared come back with
	// bare references.
	GetByID(ctx context.Context, id uuid.UUID) (*Quotation, error)

	// GetByOwner returns the owner's quotation headers, newest first.
	// Line items are not loaded.
	GetByOwner(ctx context.Context, ownerID uint) ([]*Quotation, error)

	// UpdateStatus applies a lifecycle transition, rejecting any move the
	// linear draft -> sent -> expired machine does not allow.
	UpdateStatus(ctx context.Context, id uuid.UUID, next Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, q *Quotation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedCreateQuotation, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO quotations (id, number, owner_id, total_minor, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, q.ID, q.Number, q.OwnerID, q.Total.Minor, string(q.Status), q.CreatedAt)
	if err != nil {
		logger.Sub("quotation").Error("db: failed to insert quotation",
			zap.String("quotation_id", q.ID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrFailedCreateQuotation, err)
	}

	for i, item := range q.Items {
		var variantID *string
		if item.Variant != nil {
			variantID = &item.Variant.ID
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO quotation_items
				(quotation_id, product_id, variant_id, quantity, unit_price_minor, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, q.ID, item.Product.ID, variantID, item.Quantity, item.UnitPrice.Minor, i)
		if err != nil {
			logger.Sub("quotation").Error("db: failed to insert quotation item",
				zap.String("quotation_id", q.ID.String()),
				zap.Int("position", i),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %v", ErrFailedCreateQuotation, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedCreateQuotation, err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	var (
		q      Quotation
		total  int64
		status string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, number, owner_id, total_minor, status, created_at
		FROM quotations
		WHERE id = $1
	`, id).Scan(&q.ID, &q.Number, &q.OwnerID, &total, &status, &q.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrQuotationNotFound
	}
	if err != nil {
		logger.Sub("quotation").Error("db: failed to get quotation",
			zap.String("quotation_id", id.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrFailedGetQuotation, err)
	}

	q.Total = money.FromMinor(total)
	q.Status = Status(status)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			qi.product_id, qi.variant_id, qi.quantity, qi.unit_price_minor,
			p.id, p.name, p.status, p.price_minor
		FROM quotation_items qi
		LEFT JOIN products p ON p.id = qi.product_id
		WHERE qi.quotation_id = $1
		ORDER BY qi.position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetQuotation, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID  string
			variantID  sql.NullString
			quantity   int
			priceMinor int64

			pID     sql.NullString
			pName   sql.NullString
			pStatus sql.NullString
			pPrice  sql.NullInt64
		)

		if err := rows.Scan(
			&productID, &variantID, &quantity, &priceMinor,
			&pID, &pName, &pStatus, &pPrice,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetQuotation, err)
		}

		item := LineItem{
			Quantity:  quantity,
			UnitPrice: money.FromMinor(priceMinor),
		}

		if pID.Valid {
			item.Product = catalog.ResolvedProduct(&catalog.Product{
				ID:         pID.String,
				Name:       pName.String,
				Status:     pStatus.String,
				PriceMinor: pPrice.Int64,
			})
		} else {
			item.Product = catalog.UnresolvedProduct(productID)
		}

		if variantID.Valid {
			ref := catalog.UnresolvedVariant(variantID.String)
			item.Variant = &ref
		}

		q.Items = append(q.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetQuotation, err)
	}

	return &q, nil
}

func (r *repository) GetByOwner(ctx context.Context, ownerID uint) ([]*Quotation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, number, owner_id, total_minor, status, created_at
		FROM quotations
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		logger.Sub("quotation").Error("db: failed to list quotations",
			zap.Uint("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrFailedGetQuotation, err)
	}
	defer rows.Close()

	var out []*Quotation
	for rows.Next() {
		var (
			q      Quotation
			total  int64
			status string
		)
		if err := rows.Scan(&q.ID, &q.Number, &q.OwnerID, &total, &status, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetQuotation, err)
		}
		q.Total = money.FromMinor(total)
		q.Status = Status(status)
		out = append(out, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetQuotation, err)
	}

	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, next Status) error {
	var current string
	err := r.db.QueryRowContext(ctx,
		"SELECT status FROM quotations WHERE id = $1", id,
	).Scan(&current)

	if err == sql.ErrNoRows {
		return ErrQuotationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpdateStatus, err)
	}

	if !Status(current).CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE quotations
		SET status = $1
		WHERE id = $2 AND status = $3
	`, string(next), id, current)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpdateStatus, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpdateStatus, err)
	}
	if affected == 0 {
		// Lost a race with a concurrent transition; treat as invalid.
		return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
	}

	return nil
}
