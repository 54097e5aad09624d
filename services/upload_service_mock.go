package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/kendall-kelly/furniture-portal-api/utils"
)

// MockUploadService is an in-memory UploadService for testing
type MockUploadService struct {
	uploads map[string][]byte // map of key to file content
	mu      sync.RWMutex
}

// NewMockUploadService creates a new mock upload service
func NewMockUploadService() *MockUploadService {
	return &MockUploadService{
		uploads: make(map[string][]byte),
	}
}

// Upload validates the file and keeps it in memory
func (m *MockUploadService) Upload(_ context.Context, fileHeader *multipart.FileHeader, kind utils.UploadKind) (string, error) {
	if err := utils.ValidateUpload(fileHeader, kind); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("uploads/mock_%s", fileHeader.Filename)
	m.mu.Lock()
	m.uploads[key] = content
	m.mu.Unlock()

	return key, nil
}

// GetURL returns a fake URL for an uploaded key
func (m *MockUploadService) GetURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if !m.Exists(key) {
		return "", fmt.Errorf("file not found in mock storage: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

func (m *MockUploadService) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.uploads, key)
	m.mu.Unlock()
	return nil
}

// Exists checks if a key exists in mock storage
func (m *MockUploadService) Exists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploads[key]
	return exists
}

// Uploads returns a copy of every stored file (for testing assertions)
func (m *MockUploadService) Uploads() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	files := make(map[string][]byte, len(m.uploads))
	for k, v := range m.uploads {
		files[k] = v
	}
	return files
}
