package repository

import (
	"context"
	"database/sql"
	"errors"

	"auth-web-server/config"
	"auth-web-server/internal/model"
	"auth-web-server/internal/util"
)

type FileRepository struct {
	*config.Database
}

func NewFileRepository(database *config.Database) *FileRepository {
	return &FileRepository{database}
}

// Create : сохраняет метаданные загружаемого файла
func (r *FileRepository) Create(ctx context.Context, file *model.File) error {
	query := `
	INSERT INTO files (uuid, owner_id, name, size_bytes, mime_type, storage_key)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`

	err := r.DB.QueryRowxContext(ctx, query,
		file.UUID,
		file.OwnerID,
		file.Name,
		file.SizeBytes,
		file.MimeType,
		file.StorageKey,
	).Scan(&file.CreatedAt)

	if err != nil {
		return util.LogError("[FileRepo] ошибка вставки данных в БД", err)
	}

	return nil
}

// GetByUUID : ищет файл владельца по UUID
func (r *FileRepository) GetByUUID(ctx context.Context, fileUUID string, ownerID int64) (*model.File, error) {
	query := `
	SELECT uuid, owner_id, name, size_bytes, mime_type, storage_key, created_at
	FROM files WHERE uuid = $1 AND owner_id = $2
	`
	var file model.File
	err := r.DB.GetContext(ctx, &file, query, fileUUID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrFileNotFound
		}
		return nil, util.LogError("[FileRepo] не удалось найти файл", err)
	}
	return &file, nil
}

// ListByOwner : список файлов пользователя
func (r *FileRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.File, error) {
	query := `
	SELECT uuid, owner_id, name, size_bytes, mime_type, storage_key, created_at
	FROM files WHERE owner_id = $1
	ORDER BY created_at DESC
	`
	var files []model.File
	if err := r.DB.SelectContext(ctx, &files, query, ownerID); err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить список файлов", err)
	}
	return files, nil
}

// Delete : удаляет метаданные файла владельца
func (r *FileRepository) Delete(ctx context.Context, fileUUID string, ownerID int64) error {
	query := `DELETE FROM files WHERE uuid = $1 AND owner_id = $2`
	result, err := r.DB.ExecContext(ctx, query, fileUUID, ownerID)
	if err != nil {
		return util.LogError("[FileRepo] не удалось удалить файл", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return model.ErrFileNotFound
	}
	return nil
}
