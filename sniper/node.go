// Package sniper wires the caches, filter state, event supervisor,
// transaction builder and dispatcher into a single main loop.
package sniper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/reactorlabs/pumpfun-sniper/cache"
	"github.com/reactorlabs/pumpfun-sniper/dispatch"
	"github.com/reactorlabs/pumpfun-sniper/events"
	"github.com/reactorlabs/pumpfun-sniper/filter"
	"github.com/reactorlabs/pumpfun-sniper/internal/sniperconfig"
	"github.com/reactorlabs/pumpfun-sniper/observability"
	"github.com/reactorlabs/pumpfun-sniper/params"
	"github.com/reactorlabs/pumpfun-sniper/txbuilder"
	"github.com/reactorlabs/pumpfun-sniper/types"
	"github.com/syndtr/goleveldb/leveldb"
)

// verdictMetric maps a rejection verdict to its counter. Allowed is
// handled separately by the caller and never reaches here.
func verdictMetric(v filter.Decision) metrics.Counter {
	switch v {
	case filter.Duplicate:
		return observability.EventsDuplicate
	case filter.Blacklisted:
		return observability.EventsBlacklisted
	case filter.NotWhitelisted:
		return observability.EventsNotWhitelisted
	case filter.RateLimited:
		return observability.EventsRateLimited
	default:
		return observability.EventsReceived
	}
}

// Node is the assembled sniper pipeline, wired together and ready to
// run.
type Node struct {
	cfg *sniperconfig.Config

	blockhash *cache.BlockhashCache
	balance   *cache.BalanceCache
	filter    *filter.State
	events    *events.Supervisor
	builder   *txbuilder.Builder
	dispatch  *dispatch.Dispatcher

	rpc     *rpcClient
	journal *leveldb.DB // nil when SeenMintsJournalPath is unset
}

// New assembles a Node from a validated config. It loads the payer
// keypair from disk but performs no network I/O.
func New(cfg *sniperconfig.Config) (*Node, error) {
	payer, err := loadKeypair(cfg.KeypairPath)
	if err != nil {
		return nil, err
	}

	rpc := newRPCClient(cfg.Endpoints.RPCHTTPURL)

	blockhashCache := cache.NewBlockhashCache()
	balanceCache := cache.NewBalanceCache()

	var journal *leveldb.DB
	if cfg.SeenMintsJournalPath != "" {
		journal, err = leveldb.OpenFile(cfg.SeenMintsJournalPath, nil)
		if err != nil {
			return nil, fmt.Errorf("open seen-mints journal: %w", err)
		}
	}

	devLists := filter.NewDevLists(cfg.WhitelistKeys(), cfg.BlacklistKeys())
	seenMints, err := filter.NewSeenMints(0, journal)
	if err != nil {
		return nil, err
	}
	if err := seenMints.LoadJournal(); err != nil {
		return nil, fmt.Errorf("load seen-mints journal: %w", err)
	}
	filterState := filter.NewState(devLists, filter.NewRateLimiter(), seenMints)

	var subscribers []events.Subscriber
	if cfg.Endpoints.WSURL != "" {
		subscribers = append(subscribers, &events.WebSocketSubscriber{
			URL:       cfg.Endpoints.WSURL,
			ProgramID: cfg.ProgramID(),
		})
	}
	if cfg.Endpoints.LaserStreamGRPCURL != "" {
		subscribers = append(subscribers, &events.LaserStreamSubscriber{
			Endpoint: cfg.Endpoints.LaserStreamGRPCURL,
		})
	}
	supervisor := events.NewSupervisor(subscribers...)

	builder := txbuilder.NewBuilder(cfg.ProgramID(), payer, blockhashCache)

	senders := []dispatch.Sender{dispatch.NewRPCSender(rpc)}
	if cfg.Endpoints.JitoAPIURL != "" {
		senders = append(senders, dispatch.NewBundleSender(cfg.Endpoints.JitoAPIURL, http.DefaultClient))
	}
	if cfg.Endpoints.NozomiRPCURL != "" {
		senders = append(senders, dispatch.NewGenericHTTPSender(cfg.Endpoints.NozomiRPCURL, http.DefaultClient))
	}

	return &Node{
		cfg:       cfg,
		blockhash: blockhashCache,
		balance:   balanceCache,
		filter:    filterState,
		events:    supervisor,
		builder:   builder,
		dispatch:  dispatch.New(senders...),
		rpc:       rpc,
		journal:   journal,
	}, nil
}

// Close releases resources held by the node that don't end with ctx
// cancellation, namely the optional seen-mints journal.
func (n *Node) Close() error {
	if n.journal == nil {
		return nil
	}
	return n.journal.Close()
}

// Run starts every background task (cache refreshers, event
// subscribers) and then drives the main loop until ctx is cancelled.
func (n *Node) Run(ctx context.Context) {
	payerKey := n.builder.Payer.PublicKey()

	go n.blockhash.SpawnUpdater(ctx, n.rpc, time.Duration(n.cfg.BlockhashRefreshMs)*time.Millisecond)
	go n.balance.SpawnUpdater(ctx, payerKey, n.rpc, time.Duration(n.cfg.BalanceRefreshMs)*time.Millisecond)

	queue := n.events.Start(ctx)
	n.runMainLoop(ctx, queue)
}

// runMainLoop pulls events, filters, and on Allowed builds and
// dispatches a buy transaction, debiting the balance cache on success.
// Every other verdict or failure is logged and the loop continues; no
// error here ever tears down a background task.
func (n *Node) runMainLoop(ctx context.Context, queue <-chan types.TokenEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-queue:
			if !ok {
				return
			}
			n.handleEvent(ctx, event)
		}
	}
}

func (n *Node) handleEvent(ctx context.Context, event types.TokenEvent) {
	observability.EventsReceived.Inc(1)

	verdict := filter.Apply(event, n.filter, n.cfg.DevFilters.DevMaxTokensPerMin, params.RateLimitWindow)
	if verdict != filter.Allowed {
		log.Info("Event rejected", "mint", event.Mint.String(), "developer", event.Developer.String(), "verdict", verdict)
		verdictMetric(verdict).Inc(1)
		return
	}
	observability.EventsAllowed.Inc(1)

	n.filter.Seen.Insert(event.Mint)

	lamports, err := n.cfg.PurchaseStrategy.ComputeBuyAmount(n.balance.Current())
	if err != nil {
		log.Error("Failed to compute buy amount", "mint", event.Mint.String(), "err", err)
		observability.BuildFailures.Inc(1)
		return
	}

	tx, err := n.builder.BuildBuy(event, lamports, n.cfg.FeeConfig.PriorityFeeLamports)
	if err != nil {
		log.Error("Failed to build buy transaction", "mint", event.Mint.String(), "err", err)
		observability.BuildFailures.Inc(1)
		return
	}
	if tx == nil {
		return
	}

	if n.cfg.DryRun {
		log.Info("Dry run: skipping dispatch", "mint", event.Mint.String(), "lamports", lamports)
		return
	}

	start := time.Now()
	sig, err := n.dispatch.Dispatch(ctx, tx)
	observability.DispatchLatency.UpdateSince(start)
	if err != nil {
		log.Warn("Dispatch failed on every endpoint", "mint", event.Mint.String(), "err", err)
		observability.DispatchFailures.Inc(1)
		return
	}
	observability.DispatchSuccesses.Inc(1)

	n.balance.Debit(lamports)
	observability.BalanceLamports.Update(int64(n.balance.Current()))
	log.Info("Buy dispatched", "mint", event.Mint.String(), "lamports", lamports, "signature", sig.String())
}
