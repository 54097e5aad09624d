package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController exports client data as spreadsheets
type ReportController struct {
	portal *services.Portal
}

func NewReportController(p *services.Portal) *ReportController {
	return &ReportController{portal: p}
}

// Export handles GET /api/v1/admin/clients/:id/export
func (rc *ReportController) Export(c *gin.Context) {
	clientID := c.Param("id")
	client, ok := rc.portal.Clients.GetByID(clientID)
	if !ok {
		respondClientNotFound(c)
		return
	}

	var buf bytes.Buffer
	found, err := rc.portal.Reports.WriteClientWorkbook(c.Request.Context(), clientID, &buf)
	if !found {
		respondClientNotFound(c)
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to export client")
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.ExportFilename(client.Username)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
