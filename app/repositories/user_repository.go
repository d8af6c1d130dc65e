package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/pkg/orm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := orm.On(r.db.WithContext(ctx)).Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, wrap("find user", err)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return wrap("create user", r.db.WithContext(ctx).Create(user).Error)
}
