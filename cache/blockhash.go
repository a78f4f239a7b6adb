// Package cache implements the two hot, single-writer/many-reader caches
// that keep transaction construction non-blocking: the recent-blockhash
// cache and the payer-balance cache.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/reactorlabs/pumpfun-sniper/types"
)

// BlockhashSource fetches the chain's current recent blockhash. It is
// satisfied by a thin wrapper around the RPC client; kept as an
// interface so the refresh loop is testable without a live node.
type BlockhashSource interface {
	LatestBlockhash(ctx context.Context) (types.Blockhash, error)
}

// BlockhashCache publishes the most recent chain blockhash with
// lock-free-read-preferred access. Once a value has been observed,
// Latest never reports empty again.
type BlockhashCache struct {
	mu      sync.RWMutex
	current *types.Blockhash
	feed    event.Feed
}

// NewBlockhashCache returns an empty cache; Latest returns ok=false until
// the first successful Update.
func NewBlockhashCache() *BlockhashCache {
	return &BlockhashCache{}
}

// Latest is a non-blocking read of the most recently published blockhash.
func (c *BlockhashCache) Latest() (types.Blockhash, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return types.Blockhash{}, false
	}
	return *c.current, true
}

// Update atomically swaps in a new blockhash and notifies subscribers.
// Monotonicity is the caller's responsibility: the periodic refresher is
// the only writer, and RPC reads of "latest" are, by chain construction,
// never older than the caller's own previous read.
func (c *BlockhashCache) Update(hash types.Blockhash) {
	c.mu.Lock()
	c.current = &hash
	c.mu.Unlock()
	c.feed.Send(hash)
}

// Subscribe yields every update. Slow receivers may miss intermediate
// values; only the latest value need ever be observed.
func (c *BlockhashCache) Subscribe(ch chan<- types.Blockhash) event.Subscription {
	return c.feed.Subscribe(ch)
}

// SpawnUpdater starts the background refresh loop. It runs until ctx is
// cancelled. Failures are logged and the previously cached value is
// retained.
func (c *BlockhashCache) SpawnUpdater(ctx context.Context, source BlockhashSource, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hash, err := source.LatestBlockhash(ctx)
			if err != nil {
				log.Warn("Blockhash refresh failed", "err", err)
				continue
			}
			c.Update(hash)
		}
	}
}
