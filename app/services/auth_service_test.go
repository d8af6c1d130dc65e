package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/internal/testutil"
	"github.com/shashiranjanraj/bookstore/pkg/auth"
)

func TestLogin(t *testing.T) {
	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db)
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &models.User{
		Name: "Admin", Email: "admin@bookstore.test", Password: hash, Role: auth.RoleAdmin,
	}))

	svc := services.NewAuthService(users)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin@bookstore.test", "correct horse")
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	_, err = svc.Login(ctx, "admin@bookstore.test", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@bookstore.test", "correct horse")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
