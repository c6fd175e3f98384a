package filestore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var (
	// ErrUnsupportedType возвращается для файлов, не являющихся изображением допустимого типа
	ErrUnsupportedType = errors.New("filestore: unsupported file type")

	// ErrTooLarge возвращается, если файл превышает допустимый размер
	ErrTooLarge = errors.New("filestore: file is too large")

	// ErrInvalidPath возвращается для путей вне хранилища
	ErrInvalidPath = errors.New("filestore: invalid path")
)

// imageExtensions допустимые MIME-типы изображений и их расширения
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store хранилище загруженных изображений поверх afero.Fs.
// В production используется BasePathFs над каталогом uploads, в тестах MemMapFs.
type Store struct {
	fs           afero.Fs
	publicPrefix string
	maxBytes     int64
}

// New создает хранилище; publicPrefix - URL-префикс, под которым файлы раздаются (например, "/uploads")
func New(fs afero.Fs, publicPrefix string, maxBytes int64) *Store {
	return &Store{
		fs:           fs,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		maxBytes:     maxBytes,
	}
}

// NewOnDisk создает хранилище в каталоге dir
func NewOnDisk(dir string, publicPrefix string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %s: %w", dir, err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir), publicPrefix, maxBytes), nil
}

// SaveImage сохраняет изображение в подкаталог dir и возвращает его публичный путь
func (s *Store) SaveImage(ctx context.Context, dir string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", fmt.Errorf("read file header: %w", err)
	}

	contentType := http.DetectContentType(head)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	dir = path.Clean("/" + dir)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create dir %s: %w", dir, err)
	}

	filePath := path.Join(dir, uuid.NewString()+ext)
	f, err := s.fs.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", filePath, err)
	}

	written, copyErr := io.Copy(f, io.LimitReader(br, s.maxBytes+1))
	closeErr := f.Close()

	if copyErr == nil && written > s.maxBytes {
		copyErr = ErrTooLarge
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = s.fs.Remove(filePath)
		return "", copyErr
	}

	return s.publicPrefix + filePath, nil
}

// Delete удаляет файл по публичному пути; отсутствие файла ошибкой не считается
func (s *Store) Delete(ctx context.Context, publicPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filePath, err := s.resolve(publicPath)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", filePath, err)
	}
	return nil
}

// Handler раздает сохраненные файлы по публичному префиксу
func (s *Store) Handler() http.Handler {
	httpFs := afero.NewHttpFs(s.fs)
	return http.StripPrefix(s.publicPrefix, http.FileServer(httpFs.Dir("/")))
}

// PublicPrefix возвращает URL-префикс хранилища
func (s *Store) PublicPrefix() string {
	return s.publicPrefix
}

func (s *Store) resolve(publicPath string) (string, error) {
	if !strings.HasPrefix(publicPath, s.publicPrefix+"/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, publicPath)
	}
	cleaned := path.Clean("/" + strings.TrimPrefix(publicPath, s.publicPrefix))
	if cleaned == "/" {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, publicPath)
	}
	return cleaned, nil
}
