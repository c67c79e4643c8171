package tokenizer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/layer-3/blackjack/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func newCredential(issuedAt time.Time) *core.Credential {
	return &core.Credential{
		ID:        "c5a1b7d2-3f55-4b1e-9a0c-7e1f5d2c9b11",
		Address:   "0xabcdef0123456789abcdef0123456789abcdef01",
		IssuedAt:  issuedAt.Truncate(time.Second),
		ExpiresAt: issuedAt.Add(time.Hour).Truncate(time.Second),
	}
}

func TestJWTTokenizer_RoundTrip(t *testing.T) {
	t.Parallel()

	tok := NewJWTTokenizer(newKey(t))
	credential := newCredential(time.Now())

	token, err := tok.CredentialToToken(credential)
	require.NoError(t, err)

	parsed, err := tok.TokenToCredential(token)
	require.NoError(t, err)
	assert.Equal(t, credential.ID, parsed.ID)
	assert.Equal(t, credential.Address, parsed.Address)
	assert.True(t, credential.IssuedAt.Equal(parsed.IssuedAt))
	assert.True(t, credential.ExpiresAt.Equal(parsed.ExpiresAt))
}

func TestJWTTokenizer_Expired(t *testing.T) {
	t.Parallel()

	tok := NewJWTTokenizer(newKey(t))
	token, err := tok.CredentialToToken(newCredential(time.Now()))
	require.NoError(t, err)

	tok.now = func() time.Time { return time.Now().Add(61 * time.Minute) }
	_, err = tok.TokenToCredential(token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)

	tok.now = time.Now
	stale, err := tok.CredentialToToken(newCredential(time.Now().Add(-2 * time.Hour)))
	require.NoError(t, err)
	_, err = tok.TokenToCredential(stale)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestJWTTokenizer_Rejects(t *testing.T) {
	t.Parallel()

	tok := NewJWTTokenizer(newKey(t))
	other := NewJWTTokenizer(newKey(t))

	foreign, err := other.CredentialToToken(newCredential(time.Now()))
	require.NoError(t, err)

	hmac := jwt.NewWithClaims(jwt.SigningMethodHS256, CredentialClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "0xabcdef0123456789abcdef0123456789abcdef01",
			Audience:  jwt.ClaimStrings{AudienceCredential},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	hmacToken, err := hmac.SignedString([]byte("secret"))
	require.NoError(t, err)

	valid, err := tok.CredentialToToken(newCredential(time.Now()))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":           "",
		"garbage":         "not.a.jwt",
		"foreign key":     foreign,
		"hmac":            hmacToken,
		"truncated":       valid[:len(valid)-4],
		"wrong signature": valid + "AA",
	} {
		_, err := tok.TokenToCredential(token)
		assert.ErrorIs(t, err, core.ErrInvalidToken, name)
	}
}

func TestJWTTokenizer_RejectsWrongAudience(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	tok := NewJWTTokenizer(key)

	token := jwt.NewWithClaims(jwt.SigningMethodES256, CredentialClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "0xabcdef0123456789abcdef0123456789abcdef01",
			Audience:  jwt.ClaimStrings{"session:access"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)

	_, err = tok.TokenToCredential(signed)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}
