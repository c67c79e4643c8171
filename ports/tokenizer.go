package ports

import "github.com/layer-3/blackjack/core"

// Tokenizer converts between credentials and bearer tokens
type Tokenizer interface {
	CredentialToToken(credential *core.Credential) (string, error)
	TokenToCredential(token string) (*core.Credential, error)
}

// SignatureVerifier checks that signature over message was produced by the
// private key behind address
type SignatureVerifier interface {
	VerifySignature(address, message, signature string) error
}
