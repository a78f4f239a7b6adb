package txbuilder

import (
	"testing"

	solana "github.com/dfuse-io/solana-go"
	"github.com/google/gofuzz"
	"github.com/near/borsh-go"
	"github.com/reactorlabs/pumpfun-sniper/cache"
	"github.com/reactorlabs/pumpfun-sniper/params"
	"github.com/reactorlabs/pumpfun-sniper/types"
	"github.com/stretchr/testify/require"
)

func testPayer(t *testing.T) solana.PrivateKey {
	t.Helper()
	_, payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return payer
}

func TestBuildBuy_EmptyBlockhashReturnsNilNotError(t *testing.T) {
	payer := testPayer(t)
	builder := NewBuilder(params.DefaultBuyProgram, payer, cache.NewBlockhashCache())

	tx, err := builder.BuildBuy(types.TokenEvent{Mint: params.DefaultBuyProgram, Developer: params.DefaultBuyProgram}, 1_000, 0)
	require.NoError(t, err)
	require.Nil(t, tx)
}

func TestBuyInstruction_DataRoundTrips(t *testing.T) {
	payer := testPayer(t)
	builder := NewBuilder(params.DefaultBuyProgram, payer, cache.NewBlockhashCache())
	event := types.TokenEvent{Mint: params.TokenProgram, Developer: params.AssociatedTokenProgram}

	ix, err := builder.buyInstruction(event, 123_456, payer.PublicKey())
	require.NoError(t, err)
	require.True(t, ix.ProgramID().Equals(params.DefaultBuyProgram))

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 40)

	var decoded BuyInstructionData
	require.NoError(t, borsh.Deserialize(&decoded, data))
	require.Equal(t, uint64(123_456), decoded.Lamports)
	require.Equal(t, [32]byte(event.Developer), decoded.Developer)
}

func TestBuyInstructionData_FuzzRoundTrips(t *testing.T) {
	f := fuzz.New()
	for i := 0; i < 50; i++ {
		var data BuyInstructionData
		f.Fuzz(&data)

		encoded, err := borsh.Serialize(data)
		require.NoError(t, err)

		var decoded BuyInstructionData
		require.NoError(t, borsh.Deserialize(&decoded, encoded))
		require.Equal(t, data, decoded)
	}
}

func TestBuildInstructions_PriorityFeeIsOptionalAndLeads(t *testing.T) {
	payer := testPayer(t)
	builder := NewBuilder(params.DefaultBuyProgram, payer, cache.NewBlockhashCache())
	event := types.TokenEvent{Mint: params.TokenProgram, Developer: params.AssociatedTokenProgram}
	payerKey := payer.PublicKey()

	without, err := builder.buildInstructions(event, 1, 0, payerKey)
	require.NoError(t, err)
	require.Len(t, without, 2)

	withFee, err := builder.buildInstructions(event, 1, 5000, payerKey)
	require.NoError(t, err)
	require.Len(t, withFee, 3)
	require.True(t, withFee[0].ProgramID().Equals(computeBudgetProgram))

	data, err := withFee[0].Data()
	require.NoError(t, err)
	require.Equal(t, setComputeUnitPriceTag, data[0])
}

func TestBuildInstructions_LastIsBuyInstruction(t *testing.T) {
	payer := testPayer(t)
	builder := NewBuilder(params.DefaultBuyProgram, payer, cache.NewBlockhashCache())
	event := types.TokenEvent{Mint: params.TokenProgram, Developer: params.AssociatedTokenProgram}

	instructions, err := builder.buildInstructions(event, 1, 0, payer.PublicKey())
	require.NoError(t, err)
	require.True(t, instructions[len(instructions)-1].ProgramID().Equals(params.DefaultBuyProgram))
}

func TestBuildBuy_SignedWithCachedBlockhash(t *testing.T) {
	payer := testPayer(t)
	bh := cache.NewBlockhashCache()
	var hash types.Blockhash
	hash[0] = 0x7
	bh.Update(hash)

	builder := NewBuilder(params.DefaultBuyProgram, payer, bh)
	event := types.TokenEvent{Mint: params.TokenProgram, Developer: params.AssociatedTokenProgram}

	tx, err := builder.BuildBuy(event, 1, 0)
	require.NoError(t, err)
	require.NotNil(t, tx)
	require.Equal(t, hash, tx.Message.RecentBlockhash)
}
