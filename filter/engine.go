package filter

import (
	"time"

	"github.com/reactorlabs/pumpfun-sniper/types"
)

// Decision is the five-valued verdict Apply may return, evaluated in a
// fixed order with the first match winning.
type Decision uint8

const (
	Allowed Decision = iota
	Duplicate
	Blacklisted
	NotWhitelisted
	RateLimited
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Duplicate:
		return "duplicate"
	case Blacklisted:
		return "blacklisted"
	case NotWhitelisted:
		return "not_whitelisted"
	case RateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Apply is the decision function. It is not side-effect free with
// respect to the rate limiter: recording the event's timestamp happens
// regardless of the final verdict, per the sliding-window admission
// contract. It does NOT insert into the seen-mints set on Allowed —
// that remains the caller's responsibility: the main loop inserts
// event.mint into seen_mints before doing any further work.
func Apply(event types.TokenEvent, state *State, maxPerMinute int, window time.Duration) Decision {
	if state.Seen.Contains(event.Mint) {
		return Duplicate
	}
	if state.Dev.IsBlacklisted(event.Developer) {
		return Blacklisted
	}
	if !state.Dev.IsWhitelisted(event.Developer) {
		return NotWhitelisted
	}
	if !state.RateLimit.IsAllowed(event.Developer, maxPerMinute, window) {
		return RateLimited
	}
	return Allowed
}
