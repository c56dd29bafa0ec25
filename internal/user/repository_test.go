package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "password", "role"}).
			AddRow(1, "Ahmed Waheed", "ahmed@example.com", "hash", "USER")
		mock.ExpectQuery("SELECT id, name, email, password, role FROM users WHERE id").
			WithArgs(uint(1)).
			WillReturnRows(rows)

		u, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "ahmed@example.com", u.Email)
		require.NotNil(t, u.Name)
		assert.Equal(t, "Ahmed Waheed", *u.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, password, role FROM users WHERE id").
			WithArgs(uint(9)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 9)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "password", "role"}).
			AddRow(1, nil, "ahmed@example.com", "hash", "USER")
		mock.ExpectQuery("SELECT id, name, email, password, role FROM users WHERE email").
			WithArgs("ahmed@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(context.Background(), "ahmed@example.com")
		require.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
		assert.Nil(t, u.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, password, role FROM users WHERE email").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
