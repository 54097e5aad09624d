package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/services"
)

// CreateAssistanceRequest represents the request body a client submits for after-sales assistance
type CreateAssistanceRequest struct {
	Subject     string   `json:"subject" binding:"required"`
	Description string   `json:"description" binding:"required"`
	ImageURLs   []string `json:"image_urls"`
}

// UpdateAssistanceRequest represents an admin update. Client-attached images are not editable here.
type UpdateAssistanceRequest struct {
	Subject         *string                  `json:"subject"`
	Description     *string                  `json:"description"`
	Status          *models.AssistanceStatus `json:"status"`
	ResolutionNotes *string                  `json:"resolution_notes"`
}

// AssistanceController handles assistance requests
type AssistanceController struct {
	portal *services.Portal
}

func NewAssistanceController(p *services.Portal) *AssistanceController {
	return &AssistanceController{portal: p}
}

// ListMine handles GET /api/v1/me/assistance - newest first
func (ac *AssistanceController) ListMine(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, ac.portal.Assistance.ListByOwner(clientID))
}

// CreateMine handles POST /api/v1/me/assistance - opens a request with status Open
func (ac *AssistanceController) CreateMine(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateAssistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	request, err := ac.portal.Assistance.Create(c.Request.Context(), clientID, services.AssistanceInput{
		Subject:     req.Subject,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create assistance request")
		return
	}
	respondData(c, http.StatusCreated, request)
}

// ListAll handles GET /api/v1/admin/assistance
func (ac *AssistanceController) ListAll(c *gin.Context) {
	respondData(c, http.StatusOK, ac.portal.Assistance.ListAll())
}

// ListForClient handles GET /api/v1/admin/clients/:id/assistance
func (ac *AssistanceController) ListForClient(c *gin.Context) {
	clientID, ok := requireClient(c, ac.portal)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, ac.portal.Assistance.ListByOwner(clientID))
}

// Update handles PUT /api/v1/admin/assistance/:itemId
func (ac *AssistanceController) Update(c *gin.Context) {
	var req UpdateAssistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	request, found, err := ac.portal.Assistance.Update(c.Request.Context(), c.Param("itemId"), services.AssistancePatch{
		Subject:         req.Subject,
		Description:     req.Description,
		Status:          req.Status,
		ResolutionNotes: req.ResolutionNotes,
	})
	if !found {
		respondError(c, http.StatusNotFound, "ASSISTANCE_NOT_FOUND", "Assistance request not found")
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to update assistance request")
		return
	}
	respondData(c, http.StatusOK, request)
}
