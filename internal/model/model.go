// Package model defines the domain models for Punchcard.
package model

// Model is the interface that all database models must implement.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// Database key constants.
const (
	KeyCredentials     = "credentials"
	KeyTemplates       = "templates:v2"
	KeyLegacyTemplates = "templates"
)
