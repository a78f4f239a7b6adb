package filter

import (
	"testing"
	"time"

	"github.com/reactorlabs/pumpfun-sniper/types"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, whitelist, blacklist []types.PublicKey) *State {
	t.Helper()
	seen, err := NewSeenMints(1024, nil)
	require.NoError(t, err)
	return NewState(NewDevLists(whitelist, blacklist), NewRateLimiter(), seen)
}

func TestApply_Duplicate(t *testing.T) {
	state := newTestState(t, nil, nil)
	mint := devKey(1)
	dev := devKey(2)
	state.Seen.Insert(mint)

	got := Apply(types.TokenEvent{Mint: mint, Developer: dev}, state, 10, time.Minute)
	require.Equal(t, Duplicate, got)
}

func TestApply_BlacklistDominatesWhitelist(t *testing.T) {
	dev := devKey(3)
	state := newTestState(t, []types.PublicKey{dev}, []types.PublicKey{dev})

	got := Apply(types.TokenEvent{Mint: devKey(9), Developer: dev}, state, 10, time.Minute)
	require.Equal(t, Blacklisted, got)
}

func TestApply_EmptyWhitelistAllowsAll(t *testing.T) {
	state := newTestState(t, nil, nil)
	dev := devKey(4)

	got := Apply(types.TokenEvent{Mint: devKey(10), Developer: dev}, state, 10, time.Minute)
	require.Equal(t, Allowed, got)
}

func TestApply_NotWhitelisted(t *testing.T) {
	state := newTestState(t, []types.PublicKey{devKey(5)}, nil)
	dev := devKey(6)

	got := Apply(types.TokenEvent{Mint: devKey(11), Developer: dev}, state, 10, time.Minute)
	require.Equal(t, NotWhitelisted, got)
}

func TestApply_RateLimit(t *testing.T) {
	dev := devKey(7)
	state := newTestState(t, nil, nil)

	for i := 0; i < 2; i++ {
		got := Apply(types.TokenEvent{Mint: devKey(byte(20 + i)), Developer: dev}, state, 2, time.Minute)
		require.Equal(t, Allowed, got)
		state.Seen.Insert(devKey(byte(20 + i)))
	}

	got := Apply(types.TokenEvent{Mint: devKey(30), Developer: dev}, state, 2, time.Minute)
	require.Equal(t, RateLimited, got)
}

func TestApply_SameMintOnlyOnePasses(t *testing.T) {
	state := newTestState(t, nil, nil)
	dev := devKey(8)
	mint := devKey(40)

	first := Apply(types.TokenEvent{Mint: mint, Developer: dev}, state, 10, time.Minute)
	require.Equal(t, Allowed, first)
	state.Seen.Insert(mint)

	second := Apply(types.TokenEvent{Mint: mint, Developer: dev}, state, 10, time.Minute)
	require.Equal(t, Duplicate, second)
}
