package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/services"
	"github.com/kendall-kelly/furniture-portal-api/utils"
)

// UploadController stores images and contract documents
type UploadController struct {
	uploads services.UploadService
}

func NewUploadController(uploads services.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

// Upload handles POST /api/v1/uploads - multipart "file" with an optional "kind" of image or document.
// The returned key is the durable reference. The url is only for immediate display: on S3 it is a
// presigned link that expires after an hour, so records should store the key or a local /uploads url.
func (uc *UploadController) Upload(c *gin.Context) {
	kind, ok := utils.ParseUploadKind(c.PostForm("kind"))
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_UPLOAD_KIND", "Kind must be image or document")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "FILE_REQUIRED", "A file is required")
		return
	}

	key, err := uc.uploads.Upload(c.Request.Context(), fileHeader, kind)
	if err != nil {
		respondServiceError(c, err, "Failed to upload file")
		return
	}

	url, err := uc.uploads.GetURL(c.Request.Context(), key)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve file URL")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"key": key, "url": url})
}

// Delete handles DELETE /api/v1/admin/uploads/*key - removes a stored file; unknown keys are not an error
func (uc *UploadController) Delete(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") || strings.Contains(key, "\\") {
		respondError(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid upload key")
		return
	}

	if err := uc.uploads.Delete(c.Request.Context(), key); err != nil {
		respondServiceError(c, err, "Failed to delete file")
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": key})
}

// GetUploadedFile returns a handler for GET /api/v1/uploads/:filename serving files from dir
func GetUploadedFile(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := c.Param("filename")

		if filename == "" {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Filename is required")
			return
		}

		// Prevent directory traversal
		if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
			respondError(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
			return
		}

		ext := strings.ToLower(filepath.Ext(filename))
		if !isServedFormat(ext) {
			respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Unsupported file type")
			return
		}

		filePath := filepath.Join(dir, filename)
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
			return
		}

		c.Header("Content-Type", utils.ContentTypeFor(filename))
		c.Header("Cache-Control", "public, max-age=86400")
		c.File(filePath)
	}
}

func isServedFormat(ext string) bool {
	for _, formats := range [][]string{utils.AllowedImageFormats, utils.AllowedDocumentFormats} {
		for _, format := range formats {
			if ext == format {
				return true
			}
		}
	}
	return false
}
