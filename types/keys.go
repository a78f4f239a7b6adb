// Package types holds the small, dependency-light value types shared by
// every component of the sniper pipeline: public keys, blockhashes and
// token-creation events. None of these types perform I/O.
package types

import (
	"fmt"

	solana "github.com/dfuse-io/solana-go"
)

// PublicKey is a 32-byte Solana account key. It is a thin alias over the
// solana-go representation so the rest of the codebase never has to
// import the upstream package directly for the common case.
type PublicKey = solana.PublicKey

// Blockhash is the opaque 32-byte token chain RPC nodes hand out as the
// "recent blockhash" of a transaction. The core never interprets its
// bytes beyond treating it as an opaque value with no expiry logic.
type Blockhash = solana.Hash

// ParsePublicKey decodes a base58-encoded public key, the representation
// used at every external boundary (config files, JSON-RPC payloads).
func ParsePublicKey(base58 string) (PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(base58)
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key %q: %w", base58, err)
	}
	return key, nil
}

// MustParsePublicKey is ParsePublicKey but panics on error; reserved for
// startup-time parsing of constants where failure indicates a bug in this
// binary, not bad operator input.
func MustParsePublicKey(base58 string) PublicKey {
	key, err := ParsePublicKey(base58)
	if err != nil {
		panic(err)
	}
	return key
}
