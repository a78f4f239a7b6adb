// Package observability exposes the sniper's runtime metrics over
// HTTP and optionally mirrors them to InfluxDB. The core pipeline
// functions identically with it disabled.
package observability

import (
	"github.com/ethereum/go-ethereum/metrics"
)

// Registered counters and timers, in a package-level var block.
var (
	EventsReceived   = metrics.NewRegisteredCounter("sniper/events/received", nil)
	EventsAllowed    = metrics.NewRegisteredCounter("sniper/events/allowed", nil)
	EventsDuplicate  = metrics.NewRegisteredCounter("sniper/events/duplicate", nil)
	EventsBlacklisted = metrics.NewRegisteredCounter("sniper/events/blacklisted", nil)
	EventsNotWhitelisted = metrics.NewRegisteredCounter("sniper/events/notwhitelisted", nil)
	EventsRateLimited = metrics.NewRegisteredCounter("sniper/events/ratelimited", nil)

	BuildFailures = metrics.NewRegisteredCounter("sniper/build/failures", nil)

	DispatchSuccesses = metrics.NewRegisteredCounter("sniper/dispatch/successes", nil)
	DispatchFailures  = metrics.NewRegisteredCounter("sniper/dispatch/failures", nil)
	DispatchLatency   = metrics.NewRegisteredTimer("sniper/dispatch/latency", nil)

	BalanceLamports = metrics.NewRegisteredGauge("sniper/balance/lamports", nil)
)
