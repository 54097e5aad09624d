package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/middleware"
	"github.com/kendall-kelly/furniture-portal-api/services"
)

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController handles login, logout and the current identity
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login handles POST /api/v1/auth/login - client login
func (ac *AuthController) Login(c *gin.Context) {
	ac.login(c, ac.auth.LoginClient)
}

// AdminLogin handles POST /api/v1/auth/admin/login - administrator login
func (ac *AuthController) AdminLogin(c *gin.Context) {
	ac.login(c, ac.auth.LoginAdmin)
}

func (ac *AuthController) login(c *gin.Context, login func(username, password string) (services.Session, error)) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := login(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}
	respondData(c, http.StatusOK, session)
}

// Logout handles POST /api/v1/auth/logout - revokes the presented token
func (ac *AuthController) Logout(c *gin.Context) {
	tokenID, expiresAt, err := middleware.GetTokenID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract token information")
		return
	}
	if err := ac.auth.Logout(tokenID, expiresAt); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_TOKEN", err.Error())
		return
	}
	respondData(c, http.StatusOK, gin.H{"logged_out": true})
}

// Me handles GET /api/v1/auth/me - returns the account behind the token
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	role, err := middleware.GetRole(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	session, found := ac.auth.CurrentIdentity(services.Role(role), userID)
	if !found {
		respondError(c, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Account no longer exists")
		return
	}
	respondData(c, http.StatusOK, session)
}
