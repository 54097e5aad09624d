package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

var (
	// AllowedImageFormats are accepted for furniture, assistance and purchased item photos
	AllowedImageFormats = []string{".png", ".jpg", ".jpeg", ".webp"}
	// AllowedDocumentFormats are accepted for contract documents
	AllowedDocumentFormats = []string{".pdf"}
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// UploadKind selects the set of accepted extensions
type UploadKind string

const (
	UploadKindImage    UploadKind = "image"
	UploadKindDocument UploadKind = "document"
)

// ParseUploadKind maps a form value to an UploadKind, defaulting to image
func ParseUploadKind(value string) (UploadKind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "image":
		return UploadKindImage, true
	case "document":
		return UploadKindDocument, true
	default:
		return "", false
	}
}

func (k UploadKind) allowed() []string {
	if k == UploadKindDocument {
		return AllowedDocumentFormats
	}
	return AllowedImageFormats
}

// ValidateUpload validates the uploaded file format and size for the given kind
func ValidateUpload(fileHeader *multipart.FileHeader, kind UploadKind) error {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := kind.allowed()
	for _, candidate := range allowed {
		if ext == candidate {
			return nil
		}
	}

	return &FileUploadError{
		Code:    "INVALID_FILE_FORMAT",
		Message: fmt.Sprintf("Only %s files are allowed", strings.Join(allowed, ", ")),
	}
}

// ContentTypeFor returns the MIME type for an accepted extension
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// UniqueFilename builds a collision-free name that keeps the original extension
func UniqueFilename(original string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(original))
}

// SaveUploadedFile saves the uploaded file to the local filesystem
// Returns the generated filename (relative to uploadDir)
func SaveUploadedFile(fileHeader *multipart.FileHeader, uploadDir string) (filename string, err error) {
	// Create uploads directory if it doesn't exist
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename = UniqueFilename(fileHeader.Filename)
	fullPath := filepath.Join(uploadDir, filename)

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			fmt.Printf("warning: failed to close source file: %v\n", closeErr)
		}
	}()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filename, nil
}

// GetUploadURL returns the URL path for accessing a locally stored upload
func GetUploadURL(filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("/api/v1/uploads/%s", filename)
}
