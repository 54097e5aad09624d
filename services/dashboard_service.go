package services

import "github.com/kendall-kelly/furniture-portal-api/models"

// DashboardSummary is the admin console overview
type DashboardSummary struct {
	ClientCount           int                            `json:"client_count"`
	FurnitureByStatus     map[models.FurnitureStatus]int `json:"furniture_by_status"`
	ItemsInProduction     int                            `json:"items_in_production"`
	PendingAssistance     int                            `json:"pending_assistance"`
	UnreadCompanyMessages int                            `json:"unread_company_messages"`
	TotalContractValue    float64                        `json:"total_contract_value"`
}

type DashboardService struct {
	portal *Portal
}

func NewDashboardService(p *Portal) *DashboardService {
	return &DashboardService{portal: p}
}

// Summary counts items from Production Started up to, but excluding, Completed as in production
func (s *DashboardService) Summary() DashboardSummary {
	p := s.portal
	byStatus := p.Furniture.CountByStatus()

	started := models.StageIndex(models.StatusProductionStarted)
	inProduction := 0
	for status, count := range byStatus {
		idx := models.StageIndex(status)
		if idx >= started && status != models.StatusCompleted {
			inProduction += count
		}
	}

	total := 0.0
	for _, contract := range p.Contracts.ListAll() {
		total += contract.TotalValue
	}

	return DashboardSummary{
		ClientCount:           p.Clients.Count(),
		FurnitureByStatus:     byStatus,
		ItemsInProduction:     inProduction,
		PendingAssistance:     p.Assistance.CountPending(),
		UnreadCompanyMessages: p.Messages.CountUnreadByClients(),
		TotalContractValue:    total,
	}
}
