package utils

import (
	"github.com/google/uuid"

	"github.com/michaelhessen/chronos/internal/logger"
)

// UUIDGenerator assigns account ids. Ids are time-ordered UUIDv7 so new
// accounts sort after old ones in the accounts table.
type UUIDGenerator struct {
	newV7  func() (uuid.UUID, error)
	logger *logger.Logger
}

func NewUUIDGenerator(logger *logger.Logger) *UUIDGenerator {
	return &UUIDGenerator{newV7: uuid.NewV7, logger: logger}
}

// Generate returns a UUIDv7. If the clock or entropy source fails it falls
// back to a random UUIDv4 and logs the failure, since ids stay unique either
// way but lose their ordering.
func (g *UUIDGenerator) Generate() string {
	id, err := g.newV7()
	if err == nil {
		return id.String()
	}

	fallback := uuid.NewString()
	g.logger.Warn().Err(err).Str("id", fallback).Msg("uuid v7 unavailable, issued random v4 account id")
	return fallback
}
