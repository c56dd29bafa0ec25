package user

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service interface {
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
