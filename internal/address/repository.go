package address

import (
	"context"
	"database/sql"

	"routeseven-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// FirstByUser returns the user's most relevant address (default first,
	// then oldest), or nil when the user has none on file.
	FirstByUser(ctx context.Context, userID uint) (*Address, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FirstByUser(ctx context.Context, userID uint) (*Address, error) {
	var a Address
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, phone,
		       address_line1, address_line2,
		       city, province, postal_code, country, is_default
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at ASC
		LIMIT 1
	`, userID).Scan(
		&a.ID, &a.UserID, &a.Name, &a.Phone,
		&a.Address1, &a.Address2,
		&a.City, &a.Province, &a.Postal, &a.Country, &a.IsDefault,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Sub("address").Error("db: failed to get address",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	return &a, nil
}
