package services

import "errors"

var (
	// ErrUnknownStage is returned for a furniture status outside the canonical stage order
	ErrUnknownStage = errors.New("unknown furniture status")

	ErrClientNotFound     = errors.New("client not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrPasswordRequired   = errors.New("password is required")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
)
