package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewID32 returns a 32-character lowercase hex identifier. Loans and user
// accounts expose these instead of their numeric primary keys.
func NewID32() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// NewRegistrationNumber formats a copy registration number from a catalog
// sequence value, e.g. NewRegistrationNumber(42) == "REG-0000000042".
func NewRegistrationNumber(seq uint64) string {
	return fmt.Sprintf("REG-%010d", seq)
}
