package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates the opaque IDs handed out for offers and history rows.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator produces 32-hex-char IDs from crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
