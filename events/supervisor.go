// Package events implements the multi-source event supervisor: one
// reconnecting subscriber per configured upstream, merged into a single
// ordered queue for the main loop.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/reactorlabs/pumpfun-sniper/types"
)

// Subscriber maintains a single long-lived upstream connection and
// pushes decoded TokenEvents into out. It must loop internally
// (connect; read-until-error; backoff) and only return when ctx is
// cancelled or out is no longer being drained.
type Subscriber interface {
	Run(ctx context.Context, push func(types.TokenEvent) bool)
	Name() string
}

// Supervisor spawns one task per configured subscriber and merges their
// output into a single unbounded queue.
type Supervisor struct {
	subscribers []Subscriber
}

// NewSupervisor builds a supervisor over zero or more subscribers. A
// supervisor with zero subscribers is valid and simply never produces
// events.
func NewSupervisor(subscribers ...Subscriber) *Supervisor {
	return &Supervisor{subscribers: subscribers}
}

// Start spawns the reconnecting subscriber tasks and returns the merged
// receive handle. Events from a single upstream arrive in order; events
// across upstreams interleave by arrival time with no global order
// promised.
func (s *Supervisor) Start(ctx context.Context) <-chan types.TokenEvent {
	queue := newUnboundedQueue()

	var wg sync.WaitGroup
	for _, sub := range s.subscribers {
		wg.Add(1)
		go func(sub Subscriber) {
			defer wg.Done()
			log.Info("Starting event subscriber", "source", sub.Name())
			sub.Run(ctx, queue.push)
			log.Info("Event subscriber exited", "source", sub.Name())
		}(sub)
	}

	go func() {
		wg.Wait()
		queue.close()
	}()

	return queue.asChannel()
}

// linearBackoff tracks the reconnect policy: start at seed, grow by
// seed on each failure, saturate at ceiling. It does not reset on
// success.
type linearBackoff struct {
	seed    time.Duration
	ceiling time.Duration
	current time.Duration
}

func newLinearBackoff(seed, ceiling time.Duration) *linearBackoff {
	return &linearBackoff{seed: seed, ceiling: ceiling, current: seed}
}

// sleep blocks for the current backoff duration (respecting ctx
// cancellation) and then grows the backoff for next time.
func (b *linearBackoff) sleep(ctx context.Context) {
	timer := time.NewTimer(b.current)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}

	b.current += b.seed
	if b.current > b.ceiling {
		b.current = b.ceiling
	}
}
