package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService holds the transient on-disk copy of an upload while it is extracted.
type StorageService interface {
	SaveFile(fileName string, data []byte) (string, error)
	DeleteFile(filePath string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0o700); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile writes data under a random name, keeping only the original extension.
func (s *storageService) SaveFile(fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	filePath := filepath.Join(s.uploadPath, uuid.NewString()+ext)

	if err := os.WriteFile(filePath, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

func (s *storageService) DeleteFile(filePath string) error {
	rel, err := filepath.Rel(s.uploadPath, filePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("refusing to delete %s outside the upload directory", filePath)
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
