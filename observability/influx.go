package observability

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	legacyinflux "github.com/influxdata/influxdb1-client/v2"
)

const influxPushInterval = 10 * time.Second

// runInfluxPusher periodically snapshots the registered counters/gauges
// and writes them to InfluxDB. It writes to both the 2.x bucket API and,
// best-effort, a 1.x-compatible /write endpoint at the same URL, so
// operators running either server version see the same series —
// mirroring the dual-client setups common during an Influx version
// migration.
func runInfluxPusher(ctx context.Context, cfg Config) {
	client := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	defer client.Close()
	writeAPI := client.WriteAPIBlocking("", "sniper")

	legacyClient, err := legacyinflux.NewHTTPClient(legacyinflux.HTTPConfig{Addr: cfg.InfluxURL})
	if err != nil {
		log.Warn("Legacy InfluxDB client unavailable", "err", err)
	} else {
		defer legacyClient.Close()
	}

	ticker := time.NewTicker(influxPushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pushSnapshot(ctx, writeAPI, legacyClient)
		}
	}
}

func pushSnapshot(ctx context.Context, writeAPI influxdb2.WriteAPIBlocking, legacyClient legacyinflux.Client) {
	fields := map[string]interface{}{
		"events_received":      EventsReceived.Count(),
		"events_allowed":       EventsAllowed.Count(),
		"events_duplicate":     EventsDuplicate.Count(),
		"events_blacklisted":   EventsBlacklisted.Count(),
		"events_notwhitelisted": EventsNotWhitelisted.Count(),
		"events_ratelimited":   EventsRateLimited.Count(),
		"dispatch_successes":   DispatchSuccesses.Count(),
		"dispatch_failures":    DispatchFailures.Count(),
		"balance_lamports":     BalanceLamports.Value(),
	}

	point := influxdb2.NewPoint("sniper", nil, fields, time.Now())
	if err := writeAPI.WritePoint(ctx, point); err != nil {
		log.Warn("InfluxDB v2 write failed", "err", err)
	}

	if legacyClient == nil {
		return
	}
	batch, err := legacyinflux.NewBatchPoints(legacyinflux.BatchPointsConfig{Database: "sniper"})
	if err != nil {
		log.Warn("Legacy InfluxDB batch creation failed", "err", err)
		return
	}
	legacyPoint, err := legacyinflux.NewPoint("sniper", nil, fields, time.Now())
	if err != nil {
		log.Warn("Legacy InfluxDB point creation failed", "err", err)
		return
	}
	batch.AddPoint(legacyPoint)
	if err := legacyClient.Write(batch); err != nil {
		log.Warn("Legacy InfluxDB write failed", "err", err)
	}
}
