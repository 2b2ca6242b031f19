package model

import "time"

// File — метаданные загруженного файла. Содержимое лежит в S3,
// клиент работает с ним напрямую через pre-signed URL.
type File struct {
	UUID       string    `db:"uuid" json:"uuid"`
	OwnerID    int64     `db:"owner_id" json:"owner_id"`
	Name       string    `db:"name" json:"name"`
	SizeBytes  int64     `db:"size_bytes" json:"size_bytes"`
	MimeType   string    `db:"mime_type" json:"mime_type"`
	StorageKey string    `db:"storage_key" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type FileUploadResult struct {
	File   *File
	PutURL string // pre-signed URL для загрузки содержимого
}
