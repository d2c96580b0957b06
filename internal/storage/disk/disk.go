package disk

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// URLPrefix — путь, по которому раздаются файлы из каталога uploads
const URLPrefix = "/uploads"

// DiskStorage сохраняет загруженные файлы в локальный каталог
type DiskStorage struct {
	dir string
}

func NewDiskStorage(dir string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &DiskStorage{dir: dir}, nil
}

// Dir возвращает каталог с файлами (для раздачи статики)
func (s *DiskStorage) Dir() string {
	return s.dir
}

// Save записывает файл под новым UUID-именем и возвращает относительную ссылку.
// Имя клиента не используется в пути, берётся только расширение.
func (s *DiskStorage) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	fileName := uuid.New().String() + ext

	if err := os.WriteFile(filepath.Join(s.dir, fileName), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	// Миниатюра не обязательна: если файл не картинка, просто пропускаем
	if thumb, err := s.createThumbnail(data); err == nil {
		if err := os.WriteFile(filepath.Join(s.dir, "thumb_"+fileName), thumb, 0o644); err != nil {
			log.Printf("failed to write thumbnail: %v", err)
		}
	}

	return URLPrefix + "/" + fileName, nil
}

// createThumbnail создает миниатюру изображения
func (s *DiskStorage) createThumbnail(data []byte) ([]byte, error) {
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

// Remove удаляет файл и его миниатюру по ссылке вида /uploads/<имя>
func (s *DiskStorage) Remove(ref string) error {
	fileName := path.Base(strings.TrimPrefix(ref, URLPrefix+"/"))
	if fileName == "" || fileName == "." || fileName == "/" {
		return fmt.Errorf("invalid content ref: %q", ref)
	}
	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	// Миниатюры может не быть
	_ = os.Remove(filepath.Join(s.dir, "thumb_"+fileName))
	return nil
}
