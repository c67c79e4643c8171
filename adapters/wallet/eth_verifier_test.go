package wallet

import (
	"crypto/ecdsa"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/layer-3/blackjack/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const message = "welcome to the game black jack at Mon Oct 19 2026 10:00:00 GMT+0000"

// personalSign mimics a browser wallet's signMessage
func personalSign(t *testing.T, key *ecdsa.PrivateKey, msg string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig)
}

func newWallet(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func TestEthVerifier_Valid(t *testing.T) {
	t.Parallel()

	key, address := newWallet(t)
	sig := personalSign(t, key, message)
	v := NewEthVerifier()

	require.NoError(t, v.VerifySignature(address, message, sig))
	require.NoError(t, v.VerifySignature(strings.ToLower(address), message, sig))

	// raw 0/1 recovery ids are accepted too
	raw, err := hexutil.Decode(sig)
	require.NoError(t, err)
	raw[crypto.RecoveryIDOffset] -= 27
	require.NoError(t, v.VerifySignature(address, message, hexutil.Encode(raw)))
}

func TestEthVerifier_Forged(t *testing.T) {
	t.Parallel()

	key, address := newWallet(t)
	otherKey, otherAddress := newWallet(t)
	v := NewEthVerifier()

	tests := map[string]struct {
		address   string
		message   string
		signature string
	}{
		"other signer":     {address, message, personalSign(t, otherKey, message)},
		"claimed by other": {otherAddress, message, personalSign(t, key, message)},
		"altered message":  {address, message + ".", personalSign(t, key, message)},
		"not hex":          {address, message, "signature"},
		"short":            {address, message, "0x1234"},
		"empty":            {address, message, ""},
	}

	for name, tt := range tests {
		err := v.VerifySignature(tt.address, tt.message, tt.signature)
		assert.ErrorIs(t, err, core.ErrInvalidSignature, name)
	}
}

func TestEthVerifier_InvalidAddress(t *testing.T) {
	t.Parallel()

	key, _ := newWallet(t)
	err := NewEthVerifier().VerifySignature("player", message, personalSign(t, key, message))
	assert.ErrorIs(t, err, core.ErrInvalidAddress)
}
