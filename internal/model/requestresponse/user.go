package requestresponse

import "auth-web-server/internal/model"

// UserResponse : представление пользователя без секретов
type UserResponse struct {
	Response *model.UserView `json:"response"`
}

// UpdatePasswordRequest : запрос на смену пароля
type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" example:"N3wP@ssw0rd!"`
}

// DeletedResponse : подтверждение удаления
type DeletedResponse struct {
	Response struct {
		Deleted bool `json:"deleted" example:"true"`
	} `json:"response"`
}
