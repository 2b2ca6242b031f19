package requestresponse

import (
	"time"

	"auth-web-server/internal/model"
)

// CreateFileRequest : регистрация загружаемого файла
type CreateFileRequest struct {
	Name      string `json:"name" example:"report.pdf"`
	MimeType  string `json:"mime_type" example:"application/pdf"`
	SizeBytes int64  `json:"size_bytes" example:"102400"`
}

// CreateFileResponse : метаданные файла и URL для загрузки содержимого
type CreateFileResponse struct {
	Response struct {
		UUID      string    `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		Name      string    `json:"name" example:"report.pdf"`
		PutURL    string    `json:"put_url" example:"https://s3.example.com/..."`
		CreatedAt time.Time `json:"created_at"`
	} `json:"response"`
}

// FileListResponse : список файлов пользователя
type FileListResponse struct {
	Response []model.File `json:"response"`
}

// FileDownloadResponse : pre-signed URL на скачивание
type FileDownloadResponse struct {
	Response struct {
		GetURL string `json:"get_url" example:"https://s3.example.com/..."`
	} `json:"response"`
}
