package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/services"
)

// CreateClientRequest represents the request body for creating a client account
type CreateClientRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`
}

// UpdateClientRequest represents the request body for updating a client account
type UpdateClientRequest struct {
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
}

// ClientController handles client account management in the admin console
type ClientController struct {
	portal *services.Portal
}

func NewClientController(p *services.Portal) *ClientController {
	return &ClientController{portal: p}
}

func sanitizeClients(clients []models.Client) []models.Client {
	out := make([]models.Client, 0, len(clients))
	for _, client := range clients {
		out = append(out, client.Sanitized())
	}
	return out
}

// List handles GET /api/v1/admin/clients
func (cc *ClientController) List(c *gin.Context) {
	respondData(c, http.StatusOK, sanitizeClients(cc.portal.Clients.List()))
}

// Get handles GET /api/v1/admin/clients/:id
func (cc *ClientController) Get(c *gin.Context) {
	client, ok := cc.portal.Clients.GetByID(c.Param("id"))
	if !ok {
		respondClientNotFound(c)
		return
	}
	respondData(c, http.StatusOK, client.Sanitized())
}

// Create handles POST /api/v1/admin/clients
func (cc *ClientController) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := cc.portal.ClientService.Create(c.Request.Context(), services.ClientInput{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create client")
		return
	}
	respondData(c, http.StatusCreated, client.Sanitized())
}

// Update handles PUT /api/v1/admin/clients/:id
func (cc *ClientController) Update(c *gin.Context) {
	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	client, found, err := cc.portal.ClientService.Update(c.Request.Context(), c.Param("id"), services.ClientPatch{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if !found {
		respondClientNotFound(c)
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to update client")
		return
	}
	respondData(c, http.StatusOK, client.Sanitized())
}

// Delete handles DELETE /api/v1/admin/clients/:id and removes everything the client owns
func (cc *ClientController) Delete(c *gin.Context) {
	deleted, err := cc.portal.ClientService.Delete(c.Request.Context(), c.Param("id"))
	if !deleted && err == nil {
		respondClientNotFound(c)
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to delete client data")
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

// requireClient writes a 404 and returns false when the :id client does not exist
func requireClient(c *gin.Context, p *services.Portal) (string, bool) {
	clientID := c.Param("id")
	if !p.Clients.Exists(clientID) {
		respondClientNotFound(c)
		return "", false
	}
	return clientID, true
}
