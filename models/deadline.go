package models

import "time"

// DeadlineType classifies a deadline
type DeadlineType string

const (
	DeadlinePayment           DeadlineType = "Payment"
	DeadlineEstimatedDelivery DeadlineType = "Estimated Delivery"
	DeadlineEstimatedAssembly DeadlineType = "Estimated Assembly"
	DeadlineProductionStart   DeadlineType = "Production Start"
	DeadlineProductionEnd     DeadlineType = "Production End"
)

// DeadlineTypes lists every accepted deadline type
var DeadlineTypes = []DeadlineType{
	DeadlinePayment,
	DeadlineEstimatedDelivery,
	DeadlineEstimatedAssembly,
	DeadlineProductionStart,
	DeadlineProductionEnd,
}

// Valid reports whether t is a known deadline type
func (t DeadlineType) Valid() bool {
	for _, known := range DeadlineTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Deadline is an informational date shown to the client
type Deadline struct {
	ID       string       `json:"id"`
	ClientID string       `json:"client_id"`
	Title    string       `json:"title"`
	Date     time.Time    `json:"date"`
	Type     DeadlineType `json:"type"`
	Details  *string      `json:"details,omitempty"`
}
