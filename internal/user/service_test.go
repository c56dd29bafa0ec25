package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	stored := &User{ID: 1, Email: "diver@example.com", Password: hash, Role: RoleUser}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "diver@example.com").Return(stored, nil)

		svc := NewService(repo)
		token, u, err := svc.Login(context.Background(), "diver@example.com", "correct-horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "diver@example.com").Return(stored, nil)

		svc := NewService(repo)
		_, _, err := svc.Login(context.Background(), "diver@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)

		svc := NewService(repo)
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
