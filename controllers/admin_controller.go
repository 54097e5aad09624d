package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/services"
)

// CreateAdminRequest represents the request body for creating an administrator
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents the request body for changing the current admin's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"`
}

// AdminController handles administrator accounts
type AdminController struct {
	portal *services.Portal
}

func NewAdminController(p *services.Portal) *AdminController {
	return &AdminController{portal: p}
}

// List handles GET /api/v1/admin/admins
func (ac *AdminController) List(c *gin.Context) {
	admins := ac.portal.Admins.List()
	out := make([]models.Admin, 0, len(admins))
	for _, admin := range admins {
		out = append(out, admin.Sanitized())
	}
	respondData(c, http.StatusOK, out)
}

// Create handles POST /api/v1/admin/admins
func (ac *AdminController) Create(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	admin, err := ac.portal.Admins.Create(c.Request.Context(), services.AdminInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create admin")
		return
	}
	respondData(c, http.StatusCreated, admin.Sanitized())
}

// ChangeMyPassword handles PUT /api/v1/admin/me/password
func (ac *AdminController) ChangeMyPassword(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	err := ac.portal.Admins.ChangePassword(c.Request.Context(), adminID, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, services.ErrAdminNotFound) {
		respondError(c, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Admin account not found")
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to change password")
		return
	}
	respondData(c, http.StatusOK, gin.H{"password_changed": true})
}
