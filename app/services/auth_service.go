package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/auth"
)

var ErrInvalidCredentials = errors.New("services: invalid credentials")

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login checks the password and returns a signed access token.
// Unknown emails and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateToken(user.ID, user.Role)
}
