package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/kendall-kelly/furniture-portal-api/utils"
)

// UploadService stores uploaded images and contract documents and returns opaque references
type UploadService interface {
	// Upload validates and stores a file, returns the storage key
	Upload(ctx context.Context, fileHeader *multipart.FileHeader, kind utils.UploadKind) (string, error)

	// GetURL returns a URL for accessing an uploaded file
	GetURL(ctx context.Context, key string) (string, error)

	// Delete removes a file from storage
	Delete(ctx context.Context, key string) error
}

// S3UploadService implements UploadService using AWS S3 for storage
type S3UploadService struct {
	s3Service S3Interface
}

func NewS3UploadService(s3Service S3Interface) *S3UploadService {
	return &S3UploadService{s3Service: s3Service}
}

// Upload validates and uploads a file to S3
func (s *S3UploadService) Upload(ctx context.Context, fileHeader *multipart.FileHeader, kind utils.UploadKind) (string, error) {
	if err := utils.ValidateUpload(fileHeader, kind); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(ctx, fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return s3Key, nil
}

// GetURL generates a presigned URL for accessing a file
func (s *S3UploadService) GetURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to generate file URL: %w", err)
	}
	return url, nil
}

// Delete deletes a file from S3
func (s *S3UploadService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.s3Service.DeleteFile(ctx, key); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// LocalUploadService stores files on disk and serves them from /api/v1/uploads
type LocalUploadService struct {
	dir string
}

func NewLocalUploadService(dir string) *LocalUploadService {
	return &LocalUploadService{dir: dir}
}

// Dir returns the directory files are written to
func (s *LocalUploadService) Dir() string {
	return s.dir
}

func (s *LocalUploadService) Upload(_ context.Context, fileHeader *multipart.FileHeader, kind utils.UploadKind) (string, error) {
	if err := utils.ValidateUpload(fileHeader, kind); err != nil {
		return "", err
	}
	filename, err := utils.SaveUploadedFile(fileHeader, s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return filename, nil
}

func (s *LocalUploadService) GetURL(_ context.Context, key string) (string, error) {
	return utils.GetUploadURL(key), nil
}

func (s *LocalUploadService) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
