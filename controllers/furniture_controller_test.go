package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFurnitureRouter(p *services.Portal, clientID string) *gin.Engine {
	controller := NewFurnitureController(p)
	router := setupTestRouter()

	me := router.Group("/me", mockAuthMiddleware(clientID, "client", "client-token"))
	me.GET("/furniture", controller.ListMine)
	me.GET("/furniture/:id", controller.GetMine)

	admin := router.Group("/admin", mockAuthMiddleware("admin1", "admin", "admin-token"))
	admin.GET("/furniture", controller.ListAll)
	admin.GET("/furniture/:itemId", controller.Get)
	admin.PUT("/furniture/:itemId", controller.Update)
	admin.DELETE("/furniture/:itemId", controller.Delete)
	admin.GET("/clients/:id/furniture", controller.ListForClient)
	admin.POST("/clients/:id/furniture", controller.Create)
	return router
}

func TestFurnitureController_ListMine(t *testing.T) {
	router := setupFurnitureRouter(setupTestPortal(t), "1")

	w := performRequest(router, http.MethodGet, "/me/furniture", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []FurnitureResponse
	decodeData(t, w, &items)
	assert.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, "1", item.ClientID)
		expected, err := services.ProgressPercentage(item.Status)
		require.NoError(t, err)
		assert.Equal(t, expected, item.ProgressPercentage)
	}
}

func TestFurnitureController_GetMine(t *testing.T) {
	router := setupFurnitureRouter(setupTestPortal(t), "1")

	tests := []struct {
		name       string
		itemID     string
		wantStatus int
	}{
		{"own item", "f1", http.StatusOK},
		{"another client's item", "f3", http.StatusNotFound},
		{"unknown item", "missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodGet, "/me/furniture/"+tt.itemID, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusNotFound {
				assert.Equal(t, "FURNITURE_NOT_FOUND", errorCode(t, w))
			}
		})
	}
}

func TestFurnitureResponse_UnknownStage(t *testing.T) {
	response, err := furnitureResponse(models.FurnitureItem{ID: "f1", Status: models.FurnitureStatus("Production Started")})
	require.NoError(t, err)
	assert.Equal(t, 50.0, response.ProgressPercentage)

	_, err = furnitureResponse(models.FurnitureItem{ID: "f9", Status: "Painted Blue"})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrUnknownStage)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondFurnitureList(c, []models.FurnitureItem{{ID: "f9", Status: "Painted Blue"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "UNKNOWN_STAGE", errorCode(t, w))
}

func TestFurnitureController_Create(t *testing.T) {
	p := setupTestPortal(t)
	router := setupFurnitureRouter(p, "1")

	tests := []struct {
		name       string
		clientID   string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{
			name:     "valid item",
			clientID: "2",
			body: gin.H{
				"name":                      "Bookshelf",
				"status":                    "Descriptive Approved",
				"estimated_completion_date": "2024-08-15",
				"project_value":             1200,
			},
			wantStatus: http.StatusCreated,
		},
		{"missing name", "2", gin.H{"status": "Completed"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown status", "2", gin.H{"name": "Desk", "status": "Shipped"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid date", "2", gin.H{"name": "Desk", "estimated_completion_date": "next week"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"negative value", "2", gin.H{"name": "Desk", "project_value": -1}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown client", "missing", gin.H{"name": "Desk"}, http.StatusNotFound, "CLIENT_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/admin/clients/"+tt.clientID+"/furniture", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
				return
			}
			var item FurnitureResponse
			decodeData(t, w, &item)
			assert.Len(t, item.ManufacturingLog, 4)
		})
	}

	contract, ok := p.Contracts.GetByOwner("2")
	require.True(t, ok)
	assert.Equal(t, 4400.0, contract.TotalValue)
}

func TestFurnitureController_InvalidDateReportsField(t *testing.T) {
	router := setupFurnitureRouter(setupTestPortal(t), "1")

	w := performRequest(router, http.MethodPut, "/admin/furniture/f1", gin.H{"estimated_completion_date": "31-31-2024"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"estimated_completion_date":"invalid_date"`)
}

func TestFurnitureController_UpdateStatusRecordsTimeline(t *testing.T) {
	p := setupTestPortal(t)
	router := setupFurnitureRouter(p, "1")

	w := performRequest(router, http.MethodPut, "/admin/furniture/f1", gin.H{
		"status": "Ready for Delivery",
		"notes":  "Finished early",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var item FurnitureResponse
	decodeData(t, w, &item)
	assert.Equal(t, models.StatusReadyForDelivery, item.Status)
	last := item.ManufacturingLog[len(item.ManufacturingLog)-1]
	assert.Equal(t, models.StatusReadyForDelivery, last.Stage)
	assert.Equal(t, "admin1", last.Actor)
}

func TestFurnitureController_ValueChangeRecalculatesContract(t *testing.T) {
	p := setupTestPortal(t)
	router := setupFurnitureRouter(p, "1")

	w := performRequest(router, http.MethodPut, "/admin/furniture/f4", gin.H{"project_value": 5000})
	require.Equal(t, http.StatusOK, w.Code)

	contract, ok := p.Contracts.GetByOwner("1")
	require.True(t, ok)
	assert.Equal(t, 38500.0, contract.TotalValue)

	w = performRequest(router, http.MethodDelete, "/admin/furniture/f4", nil)
	require.Equal(t, http.StatusOK, w.Code)

	contract, _ = p.Contracts.GetByOwner("1")
	assert.Equal(t, 33500.0, contract.TotalValue)

	w = performRequest(router, http.MethodDelete, "/admin/furniture/f4", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFurnitureController_UpdateNotFound(t *testing.T) {
	router := setupFurnitureRouter(setupTestPortal(t), "1")

	w := performRequest(router, http.MethodPut, "/admin/furniture/missing", gin.H{"name": "Desk"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "FURNITURE_NOT_FOUND", errorCode(t, w))
}

func TestFurnitureController_AdminLists(t *testing.T) {
	router := setupFurnitureRouter(setupTestPortal(t), "1")

	w := performRequest(router, http.MethodGet, "/admin/furniture", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []FurnitureResponse
	decodeData(t, w, &all)
	assert.Len(t, all, 4)

	w = performRequest(router, http.MethodGet, "/admin/clients/2/furniture", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mary []FurnitureResponse
	decodeData(t, w, &mary)
	require.Len(t, mary, 1)
	assert.Equal(t, "f3", mary[0].ID)

	w = performRequest(router, http.MethodGet, "/admin/furniture/f3", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/admin/clients/missing/furniture", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
