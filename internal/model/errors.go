package model

import "errors"

// Ошибки бизнес-логики, различимые через errors.Is.
// Ответы на ошибки аутентификации одинаковы для неизвестного email
// и неверного пароля, чтобы нельзя было перебирать пользователей.
var (
	ErrInvalidCredentials  = errors.New("неверный логин или пароль")
	ErrEmailTaken          = errors.New("email уже используется")
	ErrInvalidRefreshToken = errors.New("невалидный refresh токен")
	ErrTokenRevoked        = errors.New("токен отозван")
	ErrTokenMissing        = errors.New("токен не передан")
	ErrInvalidSignature    = errors.New("неверная подпись токена")
	ErrTokenExpired        = errors.New("токен просрочен")
	ErrUserNotFound        = errors.New("пользователь не найден")
	ErrFileNotFound        = errors.New("файл не найден")
	ErrAccessDenied        = errors.New("доступ запрещён")
)
