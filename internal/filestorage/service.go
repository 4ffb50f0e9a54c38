// File: internal/filestorage/service.go
package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aqkal/Rentixe/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// storedPathPattern extracts the stored file path from a public URL. The
// path after the bucket segment is the path on disk.
var storedPathPattern = regexp.MustCompile(`listing-images/(.+)$`)

// Service stores uploaded listing images on local disk and serves them
// under a public base URL.
type Service struct {
	storagePath string
	publicBase  string
	logger      *zap.Logger
}

// NewService creates a file storage service rooted at the configured path.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if cfg.StoragePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(cfg.StoragePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage path %s: %w", cfg.StoragePath, err)
	}
	logger.Info("File storage initialized", zap.String("storagePath", cfg.StoragePath))
	return &Service{
		storagePath: cfg.StoragePath,
		publicBase:  strings.TrimRight(cfg.StoragePublicBase, "/"),
		logger:      logger,
	}, nil
}

// SaveUploadedFile writes a multipart file under a unique name and returns
// the public URL it will be served from.
func (s *Service) SaveUploadedFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	extension := filepath.Ext(filepath.Base(fileHeader.Filename))
	if extension == "" {
		switch contentType := fileHeader.Header.Get("Content-Type"); {
		case strings.HasPrefix(contentType, "image/jpeg"):
			extension = ".jpg"
		case strings.HasPrefix(contentType, "image/png"):
			extension = ".png"
		case strings.HasPrefix(contentType, "image/webp"):
			extension = ".webp"
		default:
			return "", fmt.Errorf("unsupported file type or missing extension: %s", contentType)
		}
	}
	uniqueFilename := uuid.New().String() + extension

	destinationPath := filepath.Join(s.storagePath, uniqueFilename)
	dst, err := os.Create(destinationPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", destinationPath, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		os.Remove(destinationPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return s.publicBase + "/" + uniqueFilename, nil
}

// PathFromURL extracts the on-disk relative path from a public image URL.
// Returns an empty string for URLs that do not point into our storage.
func (s *Service) PathFromURL(url string) string {
	match := storedPathPattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}

// RemoveByURL deletes the stored file behind a public URL. A URL outside
// our storage or a file already gone is an error the caller may treat as a
// warning.
func (s *Service) RemoveByURL(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath := s.PathFromURL(url)
	if relPath == "" {
		return fmt.Errorf("url does not point into managed storage: %s", url)
	}

	fullPath := filepath.Join(s.storagePath, filepath.Clean(relPath))
	if !strings.HasPrefix(fullPath, filepath.Clean(s.storagePath)+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to remove path outside storage root: %s", relPath)
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to remove stored file %s: %w", relPath, err)
	}
	s.logger.Debug("Removed stored file", zap.String("path", relPath))
	return nil
}
