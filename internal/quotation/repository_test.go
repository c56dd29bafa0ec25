package quotation

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"routeseven-be/internal/catalog"
	"routeseven-be/internal/money"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuotation() *Quotation {
	return &Quotation{
		ID:      uuid.New(),
		Number:  "QTN-20250601-120000-000-0001",
		OwnerID: 1,
		Items: []LineItem{
			{Product: catalog.UnresolvedProduct("prod-1"), Quantity: 2, UnitPrice: money.FromMinor(15000)},
		},
		Total:     money.FromMinor(30000),
		Status:    StatusDraft,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		q := testQuotation()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO quotations").
			WithArgs(q.ID, q.Number, q.OwnerID, q.Total.Minor, "draft", q.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO quotation_items").
			WithArgs(q.ID, "prod-1", nil, 2, int64(15000), 0).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.Create(context.Background(), q)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Item insert failure rolls back", func(t *testing.T) {
		q := testQuotation()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO quotations").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO quotation_items").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), q)
		assert.ErrorIs(t, err, ErrFailedCreateQuotation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success with resolved product", func(t *testing.T) {
		head := sqlmock.NewRows([]string{"id", "number", "owner_id", "total_minor", "status", "created_at"}).
			AddRow(id, "QTN-1", 1, int64(30000), "draft", createdAt)
		mock.ExpectQuery("SELECT id, number, owner_id, total_minor, status, created_at").
			WithArgs(id).
			WillReturnRows(head)

		items := sqlmock.NewRows([]string{
			"product_id", "variant_id", "quantity", "unit_price_minor",
			"id", "name", "status", "price_minor",
		}).
			AddRow("prod-1", nil, 2, int64(15000), "prod-1", "Anchor Rope", "active", int64(15000)).
			AddRow("prod-gone", "var-1", 1, int64(500), nil, nil, nil, nil)
		mock.ExpectQuery("SELECT(.|\n)+FROM quotation_items").
			WithArgs(id).
			WillReturnRows(items)

		q, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)

		assert.Equal(t, "QTN-1", q.Number)
		assert.Equal(t, StatusDraft, q.Status)
		assert.Equal(t, int64(30000), q.Total.Minor)
		require.Len(t, q.Items, 2)

		assert.Equal(t, catalog.RefResolved, q.Items[0].Product.Kind)
		assert.Equal(t, "Anchor Rope", q.Items[0].Product.Record.Name)
		assert.Nil(t, q.Items[0].Variant)

		// item whose product vanished keeps the bare reference
		assert.Equal(t, catalog.RefUnresolved, q.Items[1].Product.Kind)
		assert.Equal(t, "prod-gone", q.Items[1].Product.ID)
		require.NotNil(t, q.Items[1].Variant)
		assert.Equal(t, "var-1", q.Items[1].Variant.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, number, owner_id, total_minor, status, created_at").
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrQuotationNotFound)
	})
}

func TestRepository_GetByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"id", "number", "owner_id", "total_minor", "status", "created_at"}).
		AddRow(uuid.New(), "QTN-2", 1, int64(500), "sent", time.Now()).
		AddRow(uuid.New(), "QTN-1", 1, int64(30000), "draft", time.Now())
	mock.ExpectQuery("SELECT id, number, owner_id, total_minor, status, created_at").
		WithArgs(uint(1)).
		WillReturnRows(rows)

	out, err := repo.GetByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "QTN-2", out[0].Number)
	assert.Equal(t, StatusSent, out[0].Status)
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Valid transition", func(t *testing.T) {
		mock.ExpectQuery("SELECT status FROM quotations").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("draft"))
		mock.ExpectExec("UPDATE quotations").
			WithArgs("sent", id, "draft").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), id, StatusSent)
		assert.NoError(t, err)
	})

	t.Run("Invalid transition", func(t *testing.T) {
		mock.ExpectQuery("SELECT status FROM quotations").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("expired"))

		err := repo.UpdateStatus(context.Background(), id, StatusSent)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT status FROM quotations").
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		err := repo.UpdateStatus(context.Background(), id, StatusSent)
		assert.ErrorIs(t, err, ErrQuotationNotFound)
	})

	t.Run("Concurrent transition loses", func(t *testing.T) {
		mock.ExpectQuery("SELECT status FROM quotations").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("draft"))
		mock.ExpectExec("UPDATE quotations").
			WithArgs("sent", id, "draft").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), id, StatusSent)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}
