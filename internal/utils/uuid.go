package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for new credential records and for client
// operations. Version 7 ids sort by creation time, which keeps new records at
// the end of the local cache.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7, or a random UUIDv4 if the clock-based
// generator fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
