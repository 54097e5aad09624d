package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestReportController_Export(t *testing.T) {
	controller := NewReportController(setupTestPortal(t))
	router := setupTestRouter()
	router.GET("/admin/clients/:id/export", mockAuthMiddleware("admin1", "admin", "token"), controller.Export)

	w := performRequest(router, http.MethodGet, "/admin/clients/1/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=client_client1.xlsx", w.Header().Get("Content-Disposition"))

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	sheet, ok := file.Sheet["Furniture"]
	require.True(t, ok)
	assert.Len(t, sheet.Rows, 4)

	w = performRequest(router, http.MethodGet, "/admin/clients/missing/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CLIENT_NOT_FOUND", errorCode(t, w))
}
