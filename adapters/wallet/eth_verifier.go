package wallet

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/layer-3/blackjack/core"
)

// EthVerifier checks EIP-191 personal_sign signatures, the format produced by
// browser wallets for signMessage
type EthVerifier struct{}

// NewEthVerifier creates a new verifier
func NewEthVerifier() *EthVerifier {
	return &EthVerifier{}
}

// VerifySignature recovers the signer of message and compares it to address
func (v *EthVerifier) VerifySignature(address, message, signature string) error {
	if !common.IsHexAddress(address) {
		return core.ErrInvalidAddress
	}

	sig, err := hexutil.Decode(signature)
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", core.ErrInvalidSignature)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("signature must be %d bytes: %w", crypto.SignatureLength, core.ErrInvalidSignature)
	}

	// Wallets emit v as 27/28, recovery expects 0/1
	sig = append([]byte(nil), sig...)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return fmt.Errorf("failed to recover signer: %w", core.ErrInvalidSignature)
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if !strings.EqualFold(recovered.Hex(), common.HexToAddress(address).Hex()) {
		return core.ErrInvalidSignature
	}

	return nil
}
