package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthController(t *testing.T) (*services.Portal, *services.AuthService, *AuthController) {
	t.Helper()
	p := setupTestPortal(t)
	auth := services.NewAuthService(p.Clients, p.Admins,
		services.NewTokenIssuer("test-secret", "furniture-portal", "furniture-portal-api", time.Hour),
		services.NewRevocationList())
	return p, auth, NewAuthController(auth)
}

func TestAuthController_Login(t *testing.T) {
	_, _, controller := setupAuthController(t)
	router := setupTestRouter()
	router.POST("/auth/login", controller.Login)
	router.POST("/auth/admin/login", controller.AdminLogin)

	tests := []struct {
		name       string
		path       string
		body       interface{}
		wantStatus int
		wantCode   string
		wantRole   string
	}{
		{"client login", "/auth/login", LoginRequest{Username: "client1", Password: "welcome123"}, http.StatusOK, "", "client"},
		{"admin login", "/auth/admin/login", LoginRequest{Username: "admin", Password: "adminpass"}, http.StatusOK, "", "admin"},
		{"wrong password", "/auth/login", LoginRequest{Username: "client1", Password: "nope"}, http.StatusUnauthorized, "INVALID_CREDENTIALS", ""},
		{"admin on client login", "/auth/login", LoginRequest{Username: "admin", Password: "adminpass"}, http.StatusUnauthorized, "INVALID_CREDENTIALS", ""},
		{"client on admin login", "/auth/admin/login", LoginRequest{Username: "client1", Password: "welcome123"}, http.StatusUnauthorized, "INVALID_CREDENTIALS", ""},
		{"missing password", "/auth/login", gin.H{"username": "client1"}, http.StatusBadRequest, "VALIDATION_ERROR", ""},
		{"malformed json", "/auth/login", `{"username":`, http.StatusBadRequest, "VALIDATION_ERROR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
				return
			}
			var session map[string]interface{}
			decodeData(t, w, &session)
			assert.NotEmpty(t, session["token"])
			assert.Equal(t, tt.wantRole, session["role"])
			assert.NotContains(t, w.Body.String(), "password_hash")
		})
	}
}

func TestAuthController_LogoutRevokesToken(t *testing.T) {
	_, auth, controller := setupAuthController(t)
	router := setupTestRouter()
	router.POST("/auth/logout", mockAuthMiddleware("1", "client", "token-1"), controller.Logout)

	w := performRequest(router, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"logged_out":true`)
	assert.True(t, auth.IsRevoked("token-1"))
}

func TestAuthController_LogoutWithoutClaims(t *testing.T) {
	_, _, controller := setupAuthController(t)
	router := setupTestRouter()
	router.POST("/auth/logout", controller.Logout)

	w := performRequest(router, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_Me(t *testing.T) {
	p, _, controller := setupAuthController(t)

	tests := []struct {
		name       string
		userID     string
		role       string
		setup      func(t *testing.T)
		wantStatus int
		wantName   string
	}{
		{"client", "1", "client", nil, http.StatusOK, "John Silva"},
		{"admin", "admin1", "admin", nil, http.StatusOK, "Main Administrator"},
		{"deleted client", "2", "client", func(t *testing.T) {
			_, err := p.ClientService.Delete(t.Context(), "2")
			require.NoError(t, err)
		}, http.StatusNotFound, ""},
		{"unknown role", "1", "guest", nil, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(t)
			}
			router := setupTestRouter()
			router.GET("/auth/me", mockAuthMiddleware(tt.userID, tt.role, "token"), controller.Me)

			w := performRequest(router, http.MethodGet, "/auth/me", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "ACCOUNT_NOT_FOUND", errorCode(t, w))
				return
			}
			assert.Contains(t, w.Body.String(), tt.wantName)
			assert.NotContains(t, w.Body.String(), "password_hash")
		})
	}
}
