package model

import "time"

// RefreshTokenRecord хранится в Redis по ключу самого токена.
// Запись живёт не дольше своего expires_at: TTL ключа выставляется
// на оставшееся время, tombstone после удаления не остаётся.
type RefreshTokenRecord struct {
	UserID    int64     `json:"user_id"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UserAgent string    `json:"user_agent,omitempty"`
	IpAddress string    `json:"ip_address,omitempty"`
}

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (для получения новой пары)
	// example: vcSi0369y1I62wOpxZFpgZ...
	RefreshToken string `json:"refreshToken"`

	// Время жизни access токена в секундах
	// example: 900
	ExpiresIn int64 `json:"expiresIn"`
}
