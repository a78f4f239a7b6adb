package filter

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/reactorlabs/pumpfun-sniper/types"
)

// DevLists holds the developer whitelist and blacklist.
// An empty whitelist means "allow all"; blacklist membership always
// denies, overriding whitelist membership.
type DevLists struct {
	whitelist mapset.Set[types.PublicKey]
	blacklist mapset.Set[types.PublicKey]
}

// NewDevLists builds developer policy sets from parsed config keys.
func NewDevLists(whitelist, blacklist []types.PublicKey) *DevLists {
	return &DevLists{
		whitelist: mapset.NewSet(whitelist...),
		blacklist: mapset.NewSet(blacklist...),
	}
}

// IsWhitelisted reports whether dev passes the whitelist check: true if
// the whitelist is empty, or dev is a member.
func (d *DevLists) IsWhitelisted(dev types.PublicKey) bool {
	return d.whitelist.Cardinality() == 0 || d.whitelist.Contains(dev)
}

// IsBlacklisted reports whether dev is explicitly denied.
func (d *DevLists) IsBlacklisted(dev types.PublicKey) bool {
	return d.blacklist.Contains(dev)
}

// State bundles everything Apply needs to evaluate an event: developer
// policy, the rate limiter, and the seen-mints set.
type State struct {
	Dev       *DevLists
	RateLimit *RateLimiter
	Seen      *SeenMints
}

// NewState wires the three filter sub-states together.
func NewState(dev *DevLists, limiter *RateLimiter, seen *SeenMints) *State {
	return &State{Dev: dev, RateLimit: limiter, Seen: seen}
}
