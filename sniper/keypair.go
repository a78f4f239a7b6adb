package sniper

import (
	"encoding/json"
	"fmt"
	"os"

	solana "github.com/dfuse-io/solana-go"
)

// loadKeypair reads a payer signing key from the on-disk JSON keypair
// format used throughout the ecosystem: a 64-byte array holding the
// private key's seed followed by its public key, matching what
// solana-keygen writes.
func loadKeypair(path string) (solana.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keypair: %w", err)
	}

	var bytes []byte
	if err := json.Unmarshal(raw, &bytes); err != nil {
		return nil, fmt.Errorf("parse keypair json: %w", err)
	}
	if len(bytes) != 64 {
		return nil, fmt.Errorf("keypair file must contain 64 bytes, got %d", len(bytes))
	}

	return solana.PrivateKey(bytes), nil
}
