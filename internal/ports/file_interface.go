package ports

import (
	"context"

	"auth-web-server/internal/model"
)

// FileRepository : SQL слой метаданных файлов
type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
	GetByUUID(ctx context.Context, fileUUID string, ownerID int64) (*model.File, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.File, error)
	Delete(ctx context.Context, fileUUID string, ownerID int64) error
}

type FileService interface {
	CreateUpload(ctx context.Context, ownerID int64, name, mimeType string, sizeBytes int64) (*model.FileUploadResult, error)
	GetDownloadURL(ctx context.Context, fileUUID string, ownerID int64) (string, error)
	ListFiles(ctx context.Context, ownerID int64) ([]model.File, error)
	DeleteFile(ctx context.Context, fileUUID string, ownerID int64) error
}
