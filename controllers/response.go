package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/middleware"
	"github.com/kendall-kelly/furniture-portal-api/services"
	"github.com/kendall-kelly/furniture-portal-api/utils"
	"github.com/kendall-kelly/furniture-portal-api/validation"
)

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

func respondViolations(c *gin.Context, violations validation.Violations) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": violations,
		},
	})
}

// respondServiceError maps repository and service errors onto the response envelope
func respondServiceError(c *gin.Context, err error, message string) {
	var verr *validation.Error
	var uploadErr *utils.FileUploadError
	switch {
	case errors.As(err, &verr):
		respondViolations(c, verr.Violations)
	case errors.As(err, &uploadErr):
		respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
	case errors.Is(err, services.ErrUsernameTaken):
		respondError(c, http.StatusConflict, "USERNAME_TAKEN", "Username already exists")
	case errors.Is(err, services.ErrPasswordRequired):
		respondError(c, http.StatusBadRequest, "PASSWORD_REQUIRED", "Password is required")
	case errors.Is(err, services.ErrIncorrectPassword):
		respondError(c, http.StatusBadRequest, "INCORRECT_PASSWORD", "Current password is incorrect")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
	case errors.Is(err, services.ErrUnknownStage):
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "UNKNOWN_STAGE", message)
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", message)
	}
}

func respondClientNotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
}

// currentUserID returns the token subject, writing a 401 when it is missing
func currentUserID(c *gin.Context) (string, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return "", false
	}
	return userID, true
}

// parseDateField parses an optional date, recording a violation when it is malformed
func parseDateField(field string, value *string, v validation.Violations) *time.Time {
	if value == nil {
		return nil
	}
	t, err := utils.ParseDate(*value)
	if err != nil {
		v[field] = "invalid_date"
		return nil
	}
	return &t
}
