package models

import "time"

// AssistanceStatus is the state of an assistance request
type AssistanceStatus string

const (
	AssistanceOpen        AssistanceStatus = "Open"
	AssistanceUnderReview AssistanceStatus = "Under Review"
	AssistanceScheduled   AssistanceStatus = "Scheduled"
	AssistanceResolved    AssistanceStatus = "Resolved"
	AssistanceClosed      AssistanceStatus = "Closed"
)

// AssistanceStatuses lists every accepted assistance status
var AssistanceStatuses = []AssistanceStatus{
	AssistanceOpen,
	AssistanceUnderReview,
	AssistanceScheduled,
	AssistanceResolved,
	AssistanceClosed,
}

// Valid reports whether s is a known assistance status
func (s AssistanceStatus) Valid() bool {
	for _, known := range AssistanceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Pending reports whether the request still waits for the company (Open or Under Review)
func (s AssistanceStatus) Pending() bool {
	return s == AssistanceOpen || s == AssistanceUnderReview
}

// AssistanceRequest represents a post-delivery support request opened by a client
type AssistanceRequest struct {
	ID              string           `json:"id"`
	ClientID        string           `json:"client_id"`
	Date            time.Time        `json:"date"`
	Subject         string           `json:"subject"`
	Description     string           `json:"description"`
	Status          AssistanceStatus `json:"status"`
	ResolutionNotes *string          `json:"resolution_notes,omitempty"`
	ImageURLs       []string         `json:"image_urls"`
}
