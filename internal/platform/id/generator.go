package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for rows the platform owns (tournaments, teams, announcements).
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator emits time ordered UUIDv7 strings, optionally prefixed ("tour_", "team_").
type UUIDGenerator struct {
	prefix string
}

func NewUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid v7: %w", err)
	}
	if g == nil || g.prefix == "" {
		return v.String(), nil
	}
	return g.prefix + v.String(), nil
}
