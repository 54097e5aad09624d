package models

import "time"

// FurnitureStatus is one stage of the manufacturing progression
type FurnitureStatus string

const (
	StatusPaymentApproved       FurnitureStatus = "Payment Approved"
	StatusFinalMeasurementDone  FurnitureStatus = "Final Measurement Done"
	StatusDescriptiveProduction FurnitureStatus = "Descriptive Production"
	StatusDescriptiveApproved   FurnitureStatus = "Descriptive Approved"
	StatusProductionStarted     FurnitureStatus = "Production Started"
	StatusReadyForDelivery      FurnitureStatus = "Ready for Delivery"
	StatusAssemblyScheduled     FurnitureStatus = "Assembly Scheduled"
	StatusAssemblyInProgress    FurnitureStatus = "Assembly In Progress"
	StatusAssemblyReview        FurnitureStatus = "Assembly Review"
	StatusCompleted             FurnitureStatus = "Completed"
)

// StageOrder is the canonical, totally ordered list of manufacturing stages.
// Do not reorder: progress percentages and log sorting are derived from the index.
var StageOrder = []FurnitureStatus{
	StatusPaymentApproved,
	StatusFinalMeasurementDone,
	StatusDescriptiveProduction,
	StatusDescriptiveApproved,
	StatusProductionStarted,
	StatusReadyForDelivery,
	StatusAssemblyScheduled,
	StatusAssemblyInProgress,
	StatusAssemblyReview,
	StatusCompleted,
}

// StageIndex returns the position of status in StageOrder, or -1 if it is not a known stage
func StageIndex(status FurnitureStatus) int {
	for i, s := range StageOrder {
		if s == status {
			return i
		}
	}
	return -1
}

// Valid reports whether the status is one of the canonical stages
func (s FurnitureStatus) Valid() bool {
	return StageIndex(s) >= 0
}

// ManufacturingLogEntry records when an item entered a stage
type ManufacturingLogEntry struct {
	Stage FurnitureStatus `json:"stage"`
	Date  time.Time       `json:"date"`
	Notes string          `json:"notes,omitempty"`
	Actor string          `json:"actor,omitempty"` // who recorded the change (admin id, "system")
}

// FurnitureItem represents a custom furniture piece being manufactured for a client
type FurnitureItem struct {
	ID                      string                  `json:"id"`
	ClientID                string                  `json:"client_id"`
	Name                    string                  `json:"name"`
	Description             string                  `json:"description"`
	ImageURLs               []string                `json:"image_urls"`
	Status                  FurnitureStatus         `json:"status"`
	EstimatedCompletionDate time.Time               `json:"estimated_completion_date"`
	ManufacturingLog        []ManufacturingLogEntry `json:"manufacturing_log"`
	Dimensions              *string                 `json:"dimensions,omitempty"`
	Material                *string                 `json:"material,omitempty"`
	ProjectValue            *float64                `json:"project_value,omitempty"` // nullable, counts as zero in contract totals
	CreatedAt               time.Time               `json:"created_at"`
	UpdatedAt               time.Time               `json:"updated_at"`
}

// Value returns the project value, treating a missing value as zero
func (f FurnitureItem) Value() float64 {
	if f.ProjectValue == nil {
		return 0
	}
	return *f.ProjectValue
}
