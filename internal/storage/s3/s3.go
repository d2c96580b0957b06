package s3

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type S3Storage struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	// Создаем AWS конфигурацию с кастомным endpoint
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     cfg.AccessKeyID,
					SecretAccessKey: cfg.SecretAccessKey,
				}, nil
			},
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // path-style для совместимости с S3-совместимыми сервисами
		o.Region = cfg.Region
	})

	return &S3Storage{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
	}, nil
}

// Save загружает файл с миниатюрой в S3 и возвращает URL оригинала
func (s *S3Storage) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Генерируем уникальное имя файла
	ext := strings.ToLower(filepath.Ext(header.Filename))
	fileName := uuid.New().String() + ext

	originalPath := "markers/originals/" + fileName
	thumbPath := "markers/thumbnails/" + fileName

	// Миниатюра не обязательна: не-картинки загружаем без неё
	if thumbBytes, err := s.createThumbnail(fileBytes); err == nil {
		if _, err := s.uploadBytes(thumbBytes, thumbPath, header.Header.Get("Content-Type")); err != nil {
			log.Printf("failed to upload thumbnail: %v", err)
		}
	}

	originalURL, err := s.uploadBytes(fileBytes, originalPath, header.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to upload original: %w", err)
	}
	return originalURL, nil
}

// createThumbnail создает миниатюру изображения
func (s *S3Storage) createThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Thumbnail(img, 300, 300, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// uploadBytes загружает байты в S3
func (s *S3Storage) uploadBytes(data []byte, key, contentType string) (string, error) {
	ctx := context.Background()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	return url, nil
}

// Remove удаляет оригинал и миниатюру из S3 по URL
func (s *S3Storage) Remove(ref string) error {
	key := strings.TrimPrefix(ref, fmt.Sprintf("%s/%s/", s.endpoint, s.bucket))
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	_, _ = s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(strings.Replace(key, "markers/originals/", "markers/thumbnails/", 1)),
	})
	return nil
}
