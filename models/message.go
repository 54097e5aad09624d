package models

import "time"

// SenderRole identifies who wrote a message
type SenderRole string

const (
	SenderClient  SenderRole = "client"
	SenderCompany SenderRole = "company"
	SenderAdmin   SenderRole = "admin"
)

// Valid reports whether r is a known sender role
func (r SenderRole) Valid() bool {
	return r == SenderClient || r == SenderCompany || r == SenderAdmin
}

// Message represents one entry in the conversation between a client and the company
type Message struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	Sender    SenderRole `json:"sender"`
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp"`
	Read      bool       `json:"read"`
}
