package storage

import (
	"os"

	"mapa-markers-back/internal/storage/disk"
	"mapa-markers-back/internal/storage/s3"
)

// NewContentStore выбирает хранилище файлов по переменной окружения
// CONTENT_STORE: "s3" или "disk" (по умолчанию disk)
func NewContentStore() (ContentStore, error) {
	switch os.Getenv("CONTENT_STORE") {
	case "s3":
		return s3.NewS3Storage(s3.S3Config{
			Region:          os.Getenv("S3_REGION"),
			Bucket:          os.Getenv("S3_BUCKET"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
		})
	default:
		dir := os.Getenv("UPLOADS_DIR")
		if dir == "" {
			dir = "./uploads"
		}
		return disk.NewDiskStorage(dir)
	}
}
