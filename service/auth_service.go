package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/layer-3/blackjack/core"
	"github.com/layer-3/blackjack/ports"
)

// DefaultTokenTTL is how long a credential stays valid after issuance
const DefaultTokenTTL = time.Hour

// AuthService handles wallet authentication and credential checks
type AuthService struct {
	tokenizer ports.Tokenizer
	verifier  ports.SignatureVerifier
	logger    watermill.LoggerAdapter

	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService creates a new authentication service. A zero tokenTTL uses
// DefaultTokenTTL; a nil logger discards logs.
func NewAuthService(
	tokenizer ports.Tokenizer,
	verifier ports.SignatureVerifier,
	logger watermill.LoggerAdapter,
	tokenTTL time.Duration,
) *AuthService {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		tokenizer: tokenizer,
		verifier:  verifier,
		logger:    logger,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// TokenTTL returns the validity window of issued credentials
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Authenticate verifies that signature over message was made by address and
// issues a bearer token bound to that address
func (s *AuthService) Authenticate(ctx context.Context, address, message, signature string) (string, *core.Credential, error) {
	canonical, err := core.CanonicalAddress(address)
	if err != nil {
		return "", nil, err
	}
	if message == "" || signature == "" {
		return "", nil, fmt.Errorf("%w: message and signature are required", core.ErrInvalidRequest)
	}

	if err := s.verifier.VerifySignature(canonical, message, signature); err != nil {
		s.logger.Debug("Signature rejected", watermill.LogFields{"address": canonical, "reason": err.Error()})
		return "", nil, fmt.Errorf("signature verification failed: %w", core.ErrInvalidSignature)
	}

	now := s.now()
	credential := &core.Credential{
		ID:        uuid.New().String(),
		Address:   canonical,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	token, err := s.tokenizer.CredentialToToken(credential)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create token: %w", err)
	}

	s.logger.Info("Player authenticated", watermill.LogFields{"address": canonical, "credential_id": credential.ID})
	return token, credential, nil
}

// ValidateToken checks a bearer token's integrity and expiry
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*core.Credential, error) {
	if token == "" {
		return nil, core.ErrInvalidToken
	}

	credential, err := s.tokenizer.TokenToCredential(token)
	if err != nil {
		s.logger.Debug("Token rejected", watermill.LogFields{"reason": err.Error()})
		return nil, err
	}

	if credential.Expired(s.now()) {
		s.logger.Debug("Token rejected", watermill.LogFields{"reason": core.ErrTokenExpired.Error(), "address": credential.Address})
		return nil, core.ErrTokenExpired
	}

	return credential, nil
}

// Authorize validates token and checks that it is bound to claimedAddress.
// Addresses compare case-insensitively.
func (s *AuthService) Authorize(ctx context.Context, token, claimedAddress string) (*core.Credential, error) {
	credential, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(credential.Address, strings.TrimSpace(claimedAddress)) {
		return nil, core.ErrAddressMismatch
	}

	return credential, nil
}
