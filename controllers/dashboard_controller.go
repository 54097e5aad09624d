package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/services"
)

type DashboardController struct {
	portal *services.Portal
}

func NewDashboardController(p *services.Portal) *DashboardController {
	return &DashboardController{portal: p}
}

// Summary handles GET /api/v1/admin/dashboard
func (dc *DashboardController) Summary(c *gin.Context) {
	respondData(c, http.StatusOK, dc.portal.Dashboard.Summary())
}
