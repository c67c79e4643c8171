package tokenizer

import "github.com/golang-jwt/jwt/v5"

// CredentialClaims are the standard claims carried by a player credential.
// The subject is the lowercased wallet address.
type CredentialClaims struct {
	jwt.RegisteredClaims
}
