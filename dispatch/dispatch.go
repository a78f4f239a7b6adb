// Package dispatch races one signed transaction across N redundant
// submission endpoints and returns the first success, cancelling the
// rest.
package dispatch

import (
	"context"
	"encoding/base64"
	"fmt"

	solana "github.com/dfuse-io/solana-go"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
)

// Sender submits an already-serialized, base64-encoded transaction and
// returns the landed signature. Each configured endpoint gets its own
// Sender implementation (RPC, Jito-style bundle, or generic HTTP).
type Sender interface {
	// Name identifies the endpoint in logs.
	Name() string
	Send(ctx context.Context, tx *solana.Transaction, encoded string) (solana.Signature, error)
}

// Dispatcher fans a signed transaction out to every configured Sender
// and reports the first successful landing.
type Dispatcher struct {
	senders []Sender
}

// New builds a Dispatcher over the given senders. A Dispatcher with no
// senders always fails dispatch; callers construct one Sender per
// configured endpoint.
func New(senders ...Sender) *Dispatcher {
	return &Dispatcher{senders: senders}
}

// Dispatch serializes tx once, base64-encodes it once, and races it
// across every sender concurrently. It returns the signature from
// whichever sender succeeds first; the remaining senders are cancelled
// via ctx. If every sender fails, it returns the last error observed.
func (d *Dispatcher) Dispatch(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if len(d.senders) == 0 {
		return solana.Signature{}, fmt.Errorf("dispatch: no senders configured")
	}

	wire, err := tx.MarshalBinary()
	if err != nil {
		return solana.Signature{}, fmt.Errorf("dispatch: serialize transaction: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(wire)

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(raceCtx)

	result := make(chan solana.Signature, 1)
	errs := make(chan error, len(d.senders))

	for _, s := range d.senders {
		s := s
		g.Go(func() error {
			sig, err := s.Send(gctx, tx, encoded)
			if err != nil {
				log.Debug("Dispatch path failed", "endpoint", s.Name(), "err", err)
				errs <- fmt.Errorf("%s: %w", s.Name(), err)
				return nil
			}
			select {
			case result <- sig:
				cancel()
			default:
			}
			return nil
		})
	}

	_ = g.Wait()
	close(errs)

	select {
	case sig := <-result:
		return sig, nil
	default:
	}

	var lastErr error
	for err := range errs {
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("dispatch: all endpoints failed")
	}
	return solana.Signature{}, lastErr
}
