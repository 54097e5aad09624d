package models

import "time"

// ContractDetails holds the contract of a client. There is exactly one per client.
type ContractDetails struct {
	ClientID       string    `json:"client_id"`
	ContractNumber string    `json:"contract_number"`
	ClientName     string    `json:"client_name"` // denormalized from Client.Name
	DateSigned     time.Time `json:"date_signed"`
	ProjectAddress string    `json:"project_address"`
	TotalValue     float64   `json:"total_value"` // derived, see services.ContractAggregator
	PaymentTerms   string    `json:"payment_terms"`
	ScopeOfWork    string    `json:"scope_of_work"`
	DocumentURL    *string   `json:"document_url,omitempty"`
}
