package service

import (
	"context"

	"auth-web-server/internal/model"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/security"
	"auth-web-server/internal/util"
)

type UserService struct {
	userRepository ports.UserRepository
}

func NewUserService(userRepository ports.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

// GetUser возвращает представление пользователя без секретов
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.UserView, error) {
	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.SafeView(), nil
}

func (s *UserService) UpdatePassword(ctx context.Context, id int64, newPassword string) error {
	if err := security.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return util.LogError("[UserService] не удалось создать хэш пароля", err)
	}

	return s.userRepository.UpdatePassword(ctx, id, hash)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepository.DeleteUser(ctx, id)
}
