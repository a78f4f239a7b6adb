package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/reactorlabs/pumpfun-sniper/types"
)

// BalanceSource fetches the payer's ground-truth balance in lamports.
type BalanceSource interface {
	Balance(ctx context.Context, owner types.PublicKey) (uint64, error)
}

// BalanceCache is a low-latency estimate of the payer's lamport balance,
// updated both by periodic ground-truth refresh and by optimistic
// debiting after a successful dispatch. Refresh always wins on
// disagreement.
type BalanceCache struct {
	mu      sync.RWMutex
	current uint64
	feed    event.Feed
}

// NewBalanceCache returns a cache seeded at zero until the first refresh.
func NewBalanceCache() *BalanceCache {
	return &BalanceCache{}
}

// Current is a non-blocking read of the cached balance.
func (c *BalanceCache) Current() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Set overwrites the cached balance with a ground-truth read. This is
// the only operation a periodic refresh may call; it always wins over
// any optimistic debit made since the last refresh.
func (c *BalanceCache) Set(lamports uint64) {
	c.mu.Lock()
	c.current = lamports
	c.mu.Unlock()
	c.feed.Send(lamports)
}

// Debit subtracts lamports from the cached balance, saturating at zero:
// a debit larger than the current value is a no-op rather than an
// underflow.
func (c *BalanceCache) Debit(lamports uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current < lamports {
		return
	}
	c.current -= lamports
}

// Subscribe yields every balance change.
func (c *BalanceCache) Subscribe(ch chan<- uint64) event.Subscription {
	return c.feed.Subscribe(ch)
}

// SpawnUpdater starts the periodic ground-truth refresh loop. Runs
// until ctx is cancelled.
func (c *BalanceCache) SpawnUpdater(ctx context.Context, owner types.PublicKey, source BalanceSource, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			balance, err := source.Balance(ctx, owner)
			if err != nil {
				log.Warn("Balance refresh failed", "err", err)
				continue
			}
			c.Set(balance)
		}
	}
}
