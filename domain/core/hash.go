package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// ComputeSampleHash fingerprints a sample set so a persisted audit can be
// matched back to the exact inputs it was computed from.
func ComputeSampleHash(predictions, groundTruth []float64, groups []string) Hash {
	var data strings.Builder
	for _, p := range predictions {
		data.WriteString(fmt.Sprintf("%g|", p))
	}
	data.WriteString(";")
	for _, g := range groundTruth {
		data.WriteString(fmt.Sprintf("%g|", g))
	}
	data.WriteString(";")
	for _, g := range groups {
		data.WriteString(g)
		data.WriteString("|")
	}
	return NewHash([]byte(data.String()))
}
