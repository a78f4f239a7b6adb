package txbuilder

import (
	solana "github.com/dfuse-io/solana-go"
	"github.com/reactorlabs/pumpfun-sniper/params"
)

// deriveAssociatedTokenAddress computes the program-derived address for
// (owner, tokenProgram, mint) under the associated-token program.
func deriveAssociatedTokenAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{owner[:], params.TokenProgram[:], mint[:]},
		params.AssociatedTokenProgram,
	)
	return addr, err
}

// createAssociatedTokenAccountInstruction builds the ATA-creation
// instruction for (payer, mint), pinned to the standard token and
// associated-token programs.
func createAssociatedTokenAccountInstruction(payer, mint solana.PublicKey) (*genericInstruction, error) {
	ata, err := deriveAssociatedTokenAddress(payer, mint)
	if err != nil {
		return nil, err
	}

	return &genericInstruction{
		programID: params.AssociatedTokenProgram,
		accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(payer, true, true),
			solana.NewAccountMeta(ata, true, false),
			solana.NewAccountMeta(payer, false, false),
			solana.NewAccountMeta(mint, false, false),
			solana.NewAccountMeta(params.SystemProgram, false, false),
			solana.NewAccountMeta(params.TokenProgram, false, false),
		},
		data: nil,
	}, nil
}
