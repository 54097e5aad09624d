package models

import "time"

// Client represents a customer account with access to the portal
type Client struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // bcrypt hash, stripped by Sanitized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to send over the API
func (c Client) Sanitized() Client {
	c.PasswordHash = ""
	return c
}

// Admin represents an administrator console account
type Admin struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash,omitempty"`
}

// Sanitized returns a copy safe to send over the API
func (a Admin) Sanitized() Admin {
	a.PasswordHash = ""
	return a
}
