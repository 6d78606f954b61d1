package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/archfolio/backend/internal/config"
)

// StorageService persists uploaded files on the local disk and builds
// their public URLs.
type StorageService struct {
	cfg *config.Config
}

func NewStorageService(cfg *config.Config) *StorageService {
	// ensure upload path exists; re-creation is idempotent
	_ = os.MkdirAll(cfg.UploadPath, 0o755)
	return &StorageService{cfg: cfg}
}

// BuildFileName creates a globally unique stored name, keeping the
// original extension.
func (s *StorageService) BuildFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}

// PublicURL returns the client-facing URL for a stored file name.
func (s *StorageService) PublicURL(fileName string) string {
	return s.cfg.UploadURLPrefix + fileName
}

// AbsPath returns the on-disk location for a stored file name.
func (s *StorageService) AbsPath(fileName string) string {
	return filepath.Join(s.cfg.UploadPath, fileName)
}

// Save writes data to the upload directory. The write goes through a
// temp file and rename so a failed request never leaves a partial file
// behind.
func (s *StorageService) Save(fileName string, data []byte) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	absPath := s.AbsPath(fileName)
	tmp := absPath + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize file: %w", err)
	}
	return absPath, nil
}

// Remove deletes a stored file. A file that is already gone is not an
// error.
func (s *StorageService) Remove(fileName string) error {
	if fileName == "" {
		return nil
	}
	if err := os.Remove(s.AbsPath(fileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
