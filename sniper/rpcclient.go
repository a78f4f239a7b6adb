package sniper

import (
	"context"
	"fmt"

	solana "github.com/dfuse-io/solana-go"
	"github.com/dfuse-io/solana-go/rpc"
	"github.com/reactorlabs/pumpfun-sniper/types"
)

// rpcClient adapts solana-go/rpc.Client to the three narrow interfaces
// the caches and the dispatcher actually depend on
// (cache.BlockhashSource, cache.BalanceSource, dispatch.RPCClient).
// Isolating every direct call to the upstream RPC client behind this one
// file keeps the blast radius of an upstream API mismatch to a single,
// easily-patched adapter.
type rpcClient struct {
	client *rpc.Client
}

func newRPCClient(httpURL string) *rpcClient {
	return &rpcClient{client: rpc.NewClient(httpURL)}
}

// LatestBlockhash implements cache.BlockhashSource.
func (c *rpcClient) LatestBlockhash(ctx context.Context) (types.Blockhash, error) {
	resp, err := c.client.GetLatestBlockhash(ctx, rpc.CommitmentProcessed)
	if err != nil {
		return types.Blockhash{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	return types.Blockhash(resp.Value.Blockhash), nil
}

// Balance implements cache.BalanceSource.
func (c *rpcClient) Balance(ctx context.Context, owner types.PublicKey) (uint64, error) {
	resp, err := c.client.GetBalance(ctx, owner, rpc.CommitmentProcessed)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return resp.Value, nil
}

// SendTransactionWithOpts implements dispatch.RPCClient.
func (c *rpcClient) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	return c.client.SendTransactionWithOpts(ctx, tx, opts)
}
