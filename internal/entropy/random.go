// Package entropy supplies fresh seeds and random values for callers that
// must not share a deterministic stream, such as unfixed map seeds.
// Values come from crypto/rand, mixed with the wall clock for seeds.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"
)

// Seed returns a new non-negative seed. Successive calls differ even within
// the same clock tick.
func Seed() int64 {
	seed := time.Now().UnixNano()
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fall back to the clock alone.
		slog.Debug("crypto seed unavailable", "error", err)
	} else {
		seed ^= int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return seed & (1<<63 - 1)
}

// cryptoRandFloat generates a random float64 in [0, 1) using crypto/rand.
func cryptoRandFloat() float64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		// This should never happen but return 0.5 as a safe default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// CryptoFloat returns a random float in [0, 1) from crypto/rand.
func CryptoFloat() float64 {
	return cryptoRandFloat()
}
