package txbuilder

import (
	solana "github.com/dfuse-io/solana-go"
)

// genericInstruction is a minimal solana.Instruction implementation for
// the two hand-assembled instructions this builder emits (ATA creation
// and the program-specific buy instruction). The program's real
// instruction-builder packages (as generated for, say, the token
// program) are unnecessary here: both instructions have a small, fixed
// account list and a data payload this package constructs directly.
type genericInstruction struct {
	programID solana.PublicKey
	accounts  []*solana.AccountMeta
	data      []byte
}

func (i *genericInstruction) ProgramID() solana.PublicKey    { return i.programID }
func (i *genericInstruction) Accounts() []*solana.AccountMeta { return i.accounts }
func (i *genericInstruction) Data() ([]byte, error)          { return i.data, nil }
