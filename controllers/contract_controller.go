package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/services"
	"github.com/kendall-kelly/furniture-portal-api/validation"
)

// UpdateContractRequest represents the editable contract terms. The total is always derived.
type UpdateContractRequest struct {
	ContractNumber *string `json:"contract_number"`
	DateSigned     *string `json:"date_signed"`
	ProjectAddress *string `json:"project_address"`
	PaymentTerms   *string `json:"payment_terms"`
	ScopeOfWork    *string `json:"scope_of_work"`
	DocumentURL    *string `json:"document_url"`
}

// ContractController serves the contract of a client
type ContractController struct {
	portal *services.Portal
}

func NewContractController(p *services.Portal) *ContractController {
	return &ContractController{portal: p}
}

func (cc *ContractController) respondContract(c *gin.Context, clientID string) {
	contract, found, err := cc.portal.Aggregator.GetOrCreate(c.Request.Context(), clientID)
	if !found {
		respondClientNotFound(c)
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to load contract")
		return
	}
	respondData(c, http.StatusOK, contract)
}

// GetMine handles GET /api/v1/me/contract - creates a placeholder contract on first access
func (cc *ContractController) GetMine(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	cc.respondContract(c, clientID)
}

// GetForClient handles GET /api/v1/admin/clients/:id/contract
func (cc *ContractController) GetForClient(c *gin.Context) {
	cc.respondContract(c, c.Param("id"))
}

// UpdateForClient handles PUT /api/v1/admin/clients/:id/contract
func (cc *ContractController) UpdateForClient(c *gin.Context) {
	var req UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	v := validation.Violations{}
	dateSigned := parseDateField("date_signed", req.DateSigned, v)
	if !v.Empty() {
		respondViolations(c, v)
		return
	}

	contract, found, err := cc.portal.Aggregator.UpdateTerms(c.Request.Context(), c.Param("id"), services.ContractPatch{
		ContractNumber: req.ContractNumber,
		DateSigned:     dateSigned,
		ProjectAddress: req.ProjectAddress,
		PaymentTerms:   req.PaymentTerms,
		ScopeOfWork:    req.ScopeOfWork,
		DocumentURL:    req.DocumentURL,
	})
	if !found {
		respondClientNotFound(c)
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to update contract")
		return
	}
	respondData(c, http.StatusOK, contract)
}
