// Package txbuilder assembles the signed "buy" transaction: an optional
// priority-fee instruction, an associated-token-account creation
// instruction, and the program-specific buy instruction, signed against
// the cached recent blockhash. The builder never performs I/O and never
// blocks.
package txbuilder

import (
	solana "github.com/dfuse-io/solana-go"
	"github.com/ethereum/go-ethereum/log"
	"github.com/near/borsh-go"
	"github.com/reactorlabs/pumpfun-sniper/cache"
	"github.com/reactorlabs/pumpfun-sniper/params"
	"github.com/reactorlabs/pumpfun-sniper/types"
)

// computeBudgetProgram is the well-known compute-budget program; its
// "set compute unit price" instruction is index 3 followed by the
// little-endian micro-lamport price.
var computeBudgetProgram = types.MustParsePublicKey("ComputeBudget111111111111111111111111111111")

const setComputeUnitPriceTag = byte(3)

// BuyInstructionData is the program-specific buy instruction payload.
// Borsh encodes fixed-width unsigned integers little-endian and fixed
// byte arrays verbatim, so this struct serializes to exactly the 8+32
// byte layout the on-chain program expects.
type BuyInstructionData struct {
	Lamports  uint64
	Developer [32]byte
}

// Builder holds the immutable inputs needed to assemble a buy
// transaction: the configured program id and the payer's signing key.
type Builder struct {
	ProgramID types.PublicKey
	Payer     solana.PrivateKey
	Blockhash *cache.BlockhashCache
}

// NewBuilder constructs a Builder bound to a specific buy program and
// payer.
func NewBuilder(programID types.PublicKey, payer solana.PrivateKey, blockhash *cache.BlockhashCache) *Builder {
	return &Builder{ProgramID: programID, Payer: payer, Blockhash: blockhash}
}

// BuildBuy assembles and signs a buy transaction for event spending
// lamports. It returns (nil, nil) — not an error — when the blockhash
// cache is empty; the current event should be skipped, not treated as
// a hard failure.
func (b *Builder) BuildBuy(event types.TokenEvent, lamports uint64, priorityFeeLamports uint64) (*solana.Transaction, error) {
	blockhash, ok := b.Blockhash.Latest()
	if !ok {
		log.Warn("Blockhash cache empty, skipping transaction build", "mint", event.Mint.String())
		return nil, nil
	}

	payerKey := b.Payer.PublicKey()

	instructions, err := b.buildInstructions(event, lamports, priorityFeeLamports, payerKey)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payerKey))
	if err != nil {
		return nil, err
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payerKey) {
			return &b.Payer
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return tx, nil
}

// buildInstructions assembles the unsigned instruction list for a buy
// transaction in wire order: optional priority fee, ATA creation, then
// the program-specific buy instruction.
func (b *Builder) buildInstructions(event types.TokenEvent, lamports uint64, priorityFeeLamports uint64, payerKey solana.PublicKey) ([]solana.Instruction, error) {
	var instructions []solana.Instruction

	if priorityFeeLamports > 0 {
		instructions = append(instructions, computeUnitPriceInstruction(priorityFeeLamports))
	}

	ataIx, err := createAssociatedTokenAccountInstruction(payerKey, event.Mint)
	if err != nil {
		return nil, err
	}
	instructions = append(instructions, ataIx)

	buyIx, err := b.buyInstruction(event, lamports, payerKey)
	if err != nil {
		return nil, err
	}
	instructions = append(instructions, buyIx)

	return instructions, nil
}

// buyInstruction builds the program-specific buy instruction: accounts
// [mint (writable), payer (writable, signer), system program (readonly)],
// data = lamports.to_le_bytes() ++ developer bytes.
func (b *Builder) buyInstruction(event types.TokenEvent, lamports uint64, payerKey solana.PublicKey) (*genericInstruction, error) {
	payload := BuyInstructionData{Lamports: lamports, Developer: event.Developer}
	data, err := borsh.Serialize(payload)
	if err != nil {
		return nil, err
	}

	return &genericInstruction{
		programID: b.ProgramID,
		accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(event.Mint, true, false),
			solana.NewAccountMeta(payerKey, true, true),
			solana.NewAccountMeta(params.SystemProgram, false, false),
		},
		data: data,
	}, nil
}

func computeUnitPriceInstruction(microLamports uint64) *genericInstruction {
	data := make([]byte, 9)
	data[0] = setComputeUnitPriceTag
	putUint64LE(data[1:], microLamports)
	return &genericInstruction{
		programID: computeBudgetProgram,
		accounts:  nil,
		data:      data,
	}
}

func putUint64LE(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}
