package live

import "github.com/google/uuid"

// IDGenerator produces real random UUIDs.
type IDGenerator struct{}

// NewIDGenerator returns a live IDGenerator.
func NewIDGenerator() IDGenerator { return IDGenerator{} }

// GenerateID returns a new random UUID string.
func (IDGenerator) GenerateID() string {
	return uuid.NewString()
}
