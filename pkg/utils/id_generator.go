package utils

import (
	"github.com/google/uuid"
)

// GenerateID generates a new UUID string
func GenerateID() string {
	return uuid.New().String()
}

// GenerateConsentID generates a unique consent record ID
func GenerateConsentID() string {
	return "CONSENT-" + uuid.New().String()
}

// GenerateTemplateID generates a unique consent template ID
func GenerateTemplateID() string {
	return "TEMPLATE-" + uuid.New().String()
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
