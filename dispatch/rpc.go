package dispatch

import (
	"context"

	solana "github.com/dfuse-io/solana-go"
	"github.com/dfuse-io/solana-go/rpc"
)

// RPCClient is the subset of solana-go/rpc.Client this package depends
// on. Declaring it here keeps the dispatcher testable against a fake
// without a live RPC endpoint.
type RPCClient interface {
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
}

// RPCSender submits the transaction through the primary JSON-RPC
// endpoint with preflight simulation disabled, trading safety for
// speed: a failed simulation would otherwise add a network round trip
// the dispatcher cannot afford to wait on when other paths may already
// be racing ahead.
type RPCSender struct {
	client RPCClient
}

// NewRPCSender wraps an RPC client for use as a dispatch Sender.
func NewRPCSender(client RPCClient) *RPCSender {
	return &RPCSender{client: client}
}

func (s *RPCSender) Name() string { return "rpc" }

func (s *RPCSender) Send(ctx context.Context, tx *solana.Transaction, _ string) (solana.Signature, error) {
	return s.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{SkipPreflight: true})
}
