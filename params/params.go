// Package params holds the well-known on-chain program ids and the
// default tunables of the sniper pipeline: small, dependency-free
// constants shared by every other package.
package params

import (
	"time"

	"github.com/reactorlabs/pumpfun-sniper/types"
)

// Well-known program ids, base58.
const (
	DefaultBuyProgramBase58 = "5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"
	TokenProgramBase58      = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	AssociatedTokenProgramBase58 = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	SystemProgramBase58     = "11111111111111111111111111111111"
)

var (
	// DefaultBuyProgram is the program id whose creation events the
	// supervisor watches for, absent an operator override.
	DefaultBuyProgram = types.MustParsePublicKey(DefaultBuyProgramBase58)
	// TokenProgram is the standard fungible-token program.
	TokenProgram = types.MustParsePublicKey(TokenProgramBase58)
	// AssociatedTokenProgram derives and creates associated token accounts.
	AssociatedTokenProgram = types.MustParsePublicKey(AssociatedTokenProgramBase58)
	// SystemProgram is the chain's canonical system program.
	SystemProgram = types.MustParsePublicKey(SystemProgramBase58)
)

// Default refresh cadences and policy values.
const (
	DefaultBlockhashRefreshInterval = 350 * time.Millisecond
	DefaultBalanceRefreshInterval   = 1500 * time.Millisecond
	DefaultDevMaxTokensPerMinute    = 10
	RateLimitWindow                 = 60 * time.Second

	// Linear backoff seeds and ceiling for event-supervisor reconnects.
	GRPCBackoffSeed      = 250 * time.Millisecond
	WebSocketBackoffSeed = 500 * time.Millisecond
	BackoffCeiling       = 5 * time.Second
)

const (
	// LamportsPerSOL converts whole SOL to the minimal lamport unit.
	LamportsPerSOL = 1_000_000_000
)
