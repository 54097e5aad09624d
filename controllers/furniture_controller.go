package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/middleware"
	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/services"
	"github.com/kendall-kelly/furniture-portal-api/validation"
)

// FurnitureRequest represents the request body for creating or updating a furniture item
type FurnitureRequest struct {
	Name                    *string                 `json:"name"`
	Description             *string                 `json:"description"`
	ImageURLs               *[]string               `json:"image_urls"`
	Status                  *models.FurnitureStatus `json:"status"`
	EstimatedCompletionDate *string                 `json:"estimated_completion_date"`
	Dimensions              *string                 `json:"dimensions"`
	Material                *string                 `json:"material"`
	ProjectValue            *float64                `json:"project_value"`
	Notes                   string                  `json:"notes"`
}

// FurnitureResponse is a furniture item with its derived progress
type FurnitureResponse struct {
	models.FurnitureItem
	ProgressPercentage float64 `json:"progress_percentage"`
}

func furnitureResponse(item models.FurnitureItem) (FurnitureResponse, error) {
	progress, err := services.ProgressPercentage(item.Status)
	if err != nil {
		return FurnitureResponse{}, fmt.Errorf("furniture item %s: %w", item.ID, err)
	}
	return FurnitureResponse{FurnitureItem: item, ProgressPercentage: progress}, nil
}

func respondFurniture(c *gin.Context, status int, item models.FurnitureItem) {
	response, err := furnitureResponse(item)
	if err != nil {
		respondServiceError(c, err, "Failed to compute progress")
		return
	}
	respondData(c, status, response)
}

func respondFurnitureList(c *gin.Context, items []models.FurnitureItem) {
	out := make([]FurnitureResponse, 0, len(items))
	for _, item := range items {
		response, err := furnitureResponse(item)
		if err != nil {
			respondServiceError(c, err, "Failed to compute progress")
			return
		}
		out = append(out, response)
	}
	respondData(c, http.StatusOK, out)
}

func respondFurnitureNotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "FURNITURE_NOT_FOUND", "Furniture item not found")
}

// FurnitureController handles furniture items for the client portal and the admin console
type FurnitureController struct {
	portal *services.Portal
}

func NewFurnitureController(p *services.Portal) *FurnitureController {
	return &FurnitureController{portal: p}
}

// ListMine handles GET /api/v1/me/furniture
func (fc *FurnitureController) ListMine(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	respondFurnitureList(c, fc.portal.Furniture.ListByOwner(clientID))
}

// GetMine handles GET /api/v1/me/furniture/:id - only the owner can see an item
func (fc *FurnitureController) GetMine(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	item, ok := fc.portal.Furniture.GetOwned(c.Param("id"), clientID)
	if !ok {
		respondFurnitureNotFound(c)
		return
	}
	respondFurniture(c, http.StatusOK, item)
}

// ListAll handles GET /api/v1/admin/furniture
func (fc *FurnitureController) ListAll(c *gin.Context) {
	respondFurnitureList(c, fc.portal.Furniture.ListAll())
}

// ListForClient handles GET /api/v1/admin/clients/:id/furniture
func (fc *FurnitureController) ListForClient(c *gin.Context) {
	clientID, ok := requireClient(c, fc.portal)
	if !ok {
		return
	}
	respondFurnitureList(c, fc.portal.Furniture.ListByOwner(clientID))
}

// Get handles GET /api/v1/admin/furniture/:itemId
func (fc *FurnitureController) Get(c *gin.Context) {
	item, ok := fc.portal.Furniture.GetByID(c.Param("itemId"))
	if !ok {
		respondFurnitureNotFound(c)
		return
	}
	respondFurniture(c, http.StatusOK, item)
}

// Create handles POST /api/v1/admin/clients/:id/furniture
func (fc *FurnitureController) Create(c *gin.Context) {
	clientID, ok := requireClient(c, fc.portal)
	if !ok {
		return
	}

	var req FurnitureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	v := validation.Violations{}
	completion := parseDateField("estimated_completion_date", req.EstimatedCompletionDate, v)
	if !v.Empty() {
		respondViolations(c, v)
		return
	}

	input := services.FurnitureInput{
		Dimensions:   req.Dimensions,
		Material:     req.Material,
		ProjectValue: req.ProjectValue,
	}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.ImageURLs != nil {
		input.ImageURLs = *req.ImageURLs
	}
	if req.Status != nil {
		input.Status = *req.Status
	}
	if completion != nil {
		input.EstimatedCompletionDate = *completion
	}

	item, err := fc.portal.Furniture.Create(c.Request.Context(), clientID, input)
	if err != nil {
		respondServiceError(c, err, "Failed to create furniture item")
		return
	}
	respondFurniture(c, http.StatusCreated, item)
}

// Update handles PUT /api/v1/admin/furniture/:itemId. A status change is logged with the admin as actor.
func (fc *FurnitureController) Update(c *gin.Context) {
	var req FurnitureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	v := validation.Violations{}
	completion := parseDateField("estimated_completion_date", req.EstimatedCompletionDate, v)
	if !v.Empty() {
		respondViolations(c, v)
		return
	}

	actor, _ := middleware.GetUserID(c)
	item, found, err := fc.portal.Furniture.Update(c.Request.Context(), c.Param("itemId"), services.FurniturePatch{
		Name:                    req.Name,
		Description:             req.Description,
		ImageURLs:               req.ImageURLs,
		Status:                  req.Status,
		EstimatedCompletionDate: completion,
		Dimensions:              req.Dimensions,
		Material:                req.Material,
		ProjectValue:            req.ProjectValue,
		Actor:                   actor,
		Notes:                   req.Notes,
	})
	if !found {
		respondFurnitureNotFound(c)
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to update furniture item")
		return
	}
	respondFurniture(c, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/admin/furniture/:itemId
func (fc *FurnitureController) Delete(c *gin.Context) {
	deleted, err := fc.portal.Furniture.Delete(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		respondServiceError(c, err, "Failed to delete furniture item")
		return
	}
	if !deleted {
		respondFurnitureNotFound(c)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
