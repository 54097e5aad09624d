package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/services"
)

// PurchasedItemRequest represents the request body for creating or updating a purchased item
type PurchasedItemRequest struct {
	Name      *string   `json:"name"`
	Quantity  *int      `json:"quantity"`
	UnitPrice *float64  `json:"unit_price"`
	ImageURLs *[]string `json:"image_urls"`
	Details   *string   `json:"details"`
}

func respondPurchasedItemNotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "PURCHASED_ITEM_NOT_FOUND", "Purchased item not found")
}

// PurchasedItemController handles the purchase history of clients
type PurchasedItemController struct {
	portal *services.Portal
}

func NewPurchasedItemController(p *services.Portal) *PurchasedItemController {
	return &PurchasedItemController{portal: p}
}

// ListMine handles GET /api/v1/me/purchased-items
func (pc *PurchasedItemController) ListMine(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, pc.portal.PurchasedItems.ListByOwner(clientID))
}

// ListForClient handles GET /api/v1/admin/clients/:id/purchased-items
func (pc *PurchasedItemController) ListForClient(c *gin.Context) {
	clientID, ok := requireClient(c, pc.portal)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, pc.portal.PurchasedItems.ListByOwner(clientID))
}

// Create handles POST /api/v1/admin/clients/:id/purchased-items
func (pc *PurchasedItemController) Create(c *gin.Context) {
	clientID, ok := requireClient(c, pc.portal)
	if !ok {
		return
	}

	var req PurchasedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input := services.PurchasedItemInput{Details: req.Details}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Quantity != nil {
		input.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		input.UnitPrice = *req.UnitPrice
	}
	if req.ImageURLs != nil {
		input.ImageURLs = *req.ImageURLs
	}

	item, err := pc.portal.PurchasedItems.Create(c.Request.Context(), clientID, input)
	if err != nil {
		respondServiceError(c, err, "Failed to create purchased item")
		return
	}
	respondData(c, http.StatusCreated, item)
}

// Update handles PUT /api/v1/admin/purchased-items/:itemId
func (pc *PurchasedItemController) Update(c *gin.Context) {
	var req PurchasedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, found, err := pc.portal.PurchasedItems.Update(c.Request.Context(), c.Param("itemId"), services.PurchasedItemPatch{
		Name:      req.Name,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		ImageURLs: req.ImageURLs,
		Details:   req.Details,
	})
	if !found {
		respondPurchasedItemNotFound(c)
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to update purchased item")
		return
	}
	respondData(c, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/admin/purchased-items/:itemId
func (pc *PurchasedItemController) Delete(c *gin.Context) {
	deleted, err := pc.portal.PurchasedItems.Delete(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		respondServiceError(c, err, "Failed to delete purchased item")
		return
	}
	if !deleted {
		respondPurchasedItemNotFound(c)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
