package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/middleware"
	"github.com/kendall-kelly/furniture-portal-api/services"
	"github.com/kendall-kelly/furniture-portal-api/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

// setupTestRouter creates a test Gin router
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware creates a middleware that sets the context the real JWT middleware would
func mockAuthMiddleware(userID, role, tokenID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Set("validated_claims", &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Issuer:   "furniture-portal",
				Subject:  userID,
				Audience: []string{"furniture-portal-api"},
				ID:       tokenID,
				Expiry:   time.Now().Add(time.Hour).Unix(),
			},
			CustomClaims: &middleware.CustomClaims{Role: role},
		})
		c.Next()
	}
}

// setupTestPortal builds a portal over a memory backend holding the demo data set
func setupTestPortal(t *testing.T) *services.Portal {
	t.Helper()
	p := services.NewPortal(store.NewMemoryBackend(), nil, services.PortalOptions{
		Hasher:                services.BcryptHasher{Cost: bcrypt.MinCost},
		DefaultClientPassword: "welcome123",
		SeedAdminPassword:     "adminpass",
		Now:                   func() time.Time { return fixedNow },
		Jitter:                func() int { return 3 },
	})
	require.NoError(t, p.Load(context.Background()))
	return p
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success envelope into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// errorCode returns error.code of a failure envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string          `json:"code"`
			Details json.RawMessage `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.False(t, envelope.Success)
	return envelope.Error.Code
}

func stringPtr(v string) *string { return &v }

func float64Ptr(v float64) *float64 { return &v }
