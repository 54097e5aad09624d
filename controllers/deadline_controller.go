package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/services"
	"github.com/kendall-kelly/furniture-portal-api/validation"
)

// DeadlineRequest represents the request body for creating or updating a deadline
type DeadlineRequest struct {
	Title   *string              `json:"title"`
	Date    *string              `json:"date"`
	Type    *models.DeadlineType `json:"type"`
	Details *string              `json:"details"`
}

func respondDeadlineNotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "DEADLINE_NOT_FOUND", "Deadline not found")
}

// DeadlineController handles client deadlines
type DeadlineController struct {
	portal *services.Portal
}

func NewDeadlineController(p *services.Portal) *DeadlineController {
	return &DeadlineController{portal: p}
}

// ListMine handles GET /api/v1/me/deadlines - earliest first
func (dc *DeadlineController) ListMine(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, dc.portal.Deadlines.ListByOwner(clientID))
}

// ListForClient handles GET /api/v1/admin/clients/:id/deadlines
func (dc *DeadlineController) ListForClient(c *gin.Context) {
	clientID, ok := requireClient(c, dc.portal)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, dc.portal.Deadlines.ListByOwner(clientID))
}

// Create handles POST /api/v1/admin/clients/:id/deadlines
func (dc *DeadlineController) Create(c *gin.Context) {
	clientID, ok := requireClient(c, dc.portal)
	if !ok {
		return
	}

	var req DeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	v := validation.Violations{}
	date := parseDateField("date", req.Date, v)
	if !v.Empty() {
		respondViolations(c, v)
		return
	}

	input := services.DeadlineInput{Details: req.Details}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Type != nil {
		input.Type = *req.Type
	}
	if date != nil {
		input.Date = *date
	}

	deadline, err := dc.portal.Deadlines.Create(c.Request.Context(), clientID, input)
	if err != nil {
		respondServiceError(c, err, "Failed to create deadline")
		return
	}
	respondData(c, http.StatusCreated, deadline)
}

// Update handles PUT /api/v1/admin/deadlines/:itemId
func (dc *DeadlineController) Update(c *gin.Context) {
	var req DeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	v := validation.Violations{}
	date := parseDateField("date", req.Date, v)
	if !v.Empty() {
		respondViolations(c, v)
		return
	}

	deadline, found, err := dc.portal.Deadlines.Update(c.Request.Context(), c.Param("itemId"), services.DeadlinePatch{
		Title:   req.Title,
		Date:    date,
		Type:    req.Type,
		Details: req.Details,
	})
	if !found {
		respondDeadlineNotFound(c)
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to update deadline")
		return
	}
	respondData(c, http.StatusOK, deadline)
}

// Delete handles DELETE /api/v1/admin/deadlines/:itemId
func (dc *DeadlineController) Delete(c *gin.Context) {
	deleted, err := dc.portal.Deadlines.Delete(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		respondServiceError(c, err, "Failed to delete deadline")
		return
	}
	if !deleted {
		respondDeadlineNotFound(c)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
