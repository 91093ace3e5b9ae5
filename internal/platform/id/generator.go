package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	requestIDPrefix = "req_"
	requestIDBytes  = 12
)

// Generator creates opaque IDs used to correlate requests in logs.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator issues prefix + hex(size random bytes).
type RandomGenerator struct {
	prefix string
	size   int
}

func NewRandomGenerator(prefix string, size int) *RandomGenerator {
	if size <= 0 {
		size = requestIDBytes
	}
	return &RandomGenerator{prefix: prefix, size: size}
}

// NewRequestIDGenerator returns the generator behind X-Request-ID.
func NewRequestIDGenerator() *RandomGenerator {
	return NewRandomGenerator(requestIDPrefix, requestIDBytes)
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return g.prefix + hex.EncodeToString(buf), nil
}

// Valid reports whether a caller supplied id is safe to echo and log:
// non-empty, at most maxLen bytes, and made of letters, digits or ._:-
func Valid(value string, maxLen int) bool {
	if value == "" || len(value) > maxLen {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == ':', c == '-':
		default:
			return false
		}
	}
	return true
}
