package core

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Credential represents an authenticated wallet session
type Credential struct {
	ID        string    // Unique identifier, carried as the JWT ID
	Address   string    // Lowercased Ethereum address of the player
	IssuedAt  time.Time // When the credential was created
	ExpiresAt time.Time // When the credential stops being accepted
}

// Expired reports whether the credential is no longer valid at now
func (c *Credential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// CanonicalAddress validates an Ethereum address and returns it lowercased
func CanonicalAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", ErrInvalidAddress
	}
	return strings.ToLower(address), nil
}
