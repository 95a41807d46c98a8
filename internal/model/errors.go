package model

import "errors"

// Common errors used across the application
var (
	// Identity errors
	ErrInvalidIdentity  = errors.New("invalid identity")
	ErrIdentityNotFound = errors.New("identity not registered")

	// Match errors
	ErrGameNotFound         = errors.New("game not found")
	ErrInvalidMove          = errors.New("invalid move")
	ErrUnexpectedGameResult = errors.New("unexpected game result")

	// Authorization errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAddressBlacklisted = errors.New("address is blacklisted")
)
