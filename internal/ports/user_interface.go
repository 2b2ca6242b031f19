package ports

import (
	"context"

	"auth-web-server/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, newPasswordHash string) error
	DeleteUser(ctx context.Context, id int64) error
}

type UserService interface {
	GetUser(ctx context.Context, id int64) (*model.UserView, error)
	UpdatePassword(ctx context.Context, id int64, newPassword string) error
	DeleteUser(ctx context.Context, id int64) error
}
