package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/services"
)

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
	// Sender lets the admin console post as the company; defaults to admin
	Sender models.SenderRole `json:"sender"`
}

// MessageController handles the conversation between a client and the company
type MessageController struct {
	portal *services.Portal
}

func NewMessageController(p *services.Portal) *MessageController {
	return &MessageController{portal: p}
}

// ListMine handles GET /api/v1/me/messages - oldest first
func (mc *MessageController) ListMine(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, mc.portal.Messages.ListByOwner(clientID))
}

// SendMine handles POST /api/v1/me/messages
func (mc *MessageController) SendMine(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	message, err := mc.portal.Messages.Send(c.Request.Context(), clientID, models.SenderClient, req.Content)
	if err != nil {
		respondServiceError(c, err, "Failed to send message")
		return
	}
	respondData(c, http.StatusCreated, message)
}

// MarkMineRead handles POST /api/v1/me/messages/read
func (mc *MessageController) MarkMineRead(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}

	marked, err := mc.portal.Messages.MarkReadByClient(c.Request.Context(), clientID)
	if err != nil {
		respondServiceError(c, err, "Failed to mark messages as read")
		return
	}
	respondData(c, http.StatusOK, gin.H{"marked_read": marked})
}

// ListForClient handles GET /api/v1/admin/clients/:id/messages
func (mc *MessageController) ListForClient(c *gin.Context) {
	clientID, ok := requireClient(c, mc.portal)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, mc.portal.Messages.ListByOwner(clientID))
}

// SendToClient handles POST /api/v1/admin/clients/:id/messages
func (mc *MessageController) SendToClient(c *gin.Context) {
	clientID, ok := requireClient(c, mc.portal)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sender := req.Sender
	if sender == "" {
		sender = models.SenderAdmin
	}
	if sender == models.SenderClient {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Admins cannot send messages as the client")
		return
	}

	message, err := mc.portal.Messages.Send(c.Request.Context(), clientID, sender, req.Content)
	if err != nil {
		respondServiceError(c, err, "Failed to send message")
		return
	}
	respondData(c, http.StatusCreated, message)
}
