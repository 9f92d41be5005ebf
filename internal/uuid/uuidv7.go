// Package uuid generates identifiers for stored records.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. Version 7 embeds a millisecond timestamp, so
// identifiers sort in creation order.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to a random v4 if the entropy source fails
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
