package service

import (
	"context"
	"fmt"
	"time"

	"auth-web-server/internal/model"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/util"

	"github.com/google/uuid"
)

// FileService отслеживает метаданные загруженных файлов.
// Само содержимое клиент загружает и скачивает напрямую через
// pre-signed URL, сервер его не проксирует.
type FileService struct {
	fileRepository ports.FileRepository
	s3Service      ports.S3Storage
	urlTTL         time.Duration
}

func NewFileService(fileRepository ports.FileRepository, s3Service ports.S3Storage, urlTTL time.Duration) *FileService {
	return &FileService{
		fileRepository: fileRepository,
		s3Service:      s3Service,
		urlTTL:         urlTTL,
	}
}

// CreateUpload регистрирует метаданные файла и возвращает pre-signed
// URL для загрузки содержимого
func (s *FileService) CreateUpload(ctx context.Context, ownerID int64, name, mimeType string, sizeBytes int64) (*model.FileUploadResult, error) {
	if name == "" {
		return nil, fmt.Errorf("имя файла обязательно")
	}

	fileUUID := uuid.New().String()
	file := &model.File{
		UUID:       fileUUID,
		OwnerID:    ownerID,
		Name:       name,
		SizeBytes:  sizeBytes,
		MimeType:   mimeType,
		StorageKey: fmt.Sprintf("uploads/%d/%s", ownerID, fileUUID),
	}

	if err := s.fileRepository.Create(ctx, file); err != nil {
		return nil, util.LogError("[FileService] не удалось сохранить метаданные файла", err)
	}

	putURL, err := s.s3Service.GeneratePresignedPutURL(ctx, file.StorageKey, s.urlTTL)
	if err != nil {
		return nil, util.LogError("[FileService] не удалось сгенерировать URL загрузки", err)
	}

	return &model.FileUploadResult{File: file, PutURL: putURL}, nil
}

// GetDownloadURL возвращает pre-signed URL на скачивание файла владельца
func (s *FileService) GetDownloadURL(ctx context.Context, fileUUID string, ownerID int64) (string, error) {
	file, err := s.fileRepository.GetByUUID(ctx, fileUUID, ownerID)
	if err != nil {
		return "", err
	}

	getURL, err := s.s3Service.GeneratePresignedGetURL(ctx, file.StorageKey, s.urlTTL)
	if err != nil {
		return "", util.LogError("[FileService] не удалось сгенерировать URL скачивания", err)
	}

	return getURL, nil
}

func (s *FileService) ListFiles(ctx context.Context, ownerID int64) ([]model.File, error) {
	return s.fileRepository.ListByOwner(ctx, ownerID)
}

// DeleteFile удаляет объект из S3 и метаданные из БД
func (s *FileService) DeleteFile(ctx context.Context, fileUUID string, ownerID int64) error {
	file, err := s.fileRepository.GetByUUID(ctx, fileUUID, ownerID)
	if err != nil {
		return err
	}

	if err := s.s3Service.DeleteObject(ctx, file.StorageKey); err != nil {
		return util.LogError("[FileService] не удалось удалить объект из S3", err)
	}

	return s.fileRepository.Delete(ctx, fileUUID, ownerID)
}
