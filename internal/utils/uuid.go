package utils

import "github.com/google/uuid"

// UUIDGenerator produces the X-Request-ID values the management plane stamps
// on inbound requests. IDs are UUIDv7, so log lines sort by arrival time.
type UUIDGenerator struct {
}

// NewUUIDGenerator returns a ready-to-use generator. The zero value works
// too; the constructor exists for symmetric wiring in the handler.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new identifier in canonical UUID form. If the
// time-ordered variant cannot be built it falls back to a random v4, so the
// call never fails.
func (g *UUIDGenerator) Generate() string {
	if v7, err := uuid.NewV7(); err == nil {
		return v7.String()
	}

	return uuid.NewString()
}
