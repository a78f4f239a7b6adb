package filter

import (
	"testing"
	"time"

	"github.com/reactorlabs/pumpfun-sniper/types"
	"github.com/stretchr/testify/require"
)

func devKey(b byte) types.PublicKey {
	var k types.PublicKey
	k[0] = b
	return k
}

func TestRateLimiter_AllowsUpToLimitWithinWindow(t *testing.T) {
	r := NewRateLimiter()
	dev := devKey(1)
	base := time.Now()

	require.True(t, r.isAllowedAt(dev, 2, time.Minute, base))
	require.True(t, r.isAllowedAt(dev, 2, time.Minute, base.Add(10*time.Second)))
	require.False(t, r.isAllowedAt(dev, 2, time.Minute, base.Add(20*time.Second)))
}

func TestRateLimiter_WindowExpiryRestoresCapacity(t *testing.T) {
	r := NewRateLimiter()
	dev := devKey(2)
	base := time.Now()

	require.True(t, r.isAllowedAt(dev, 1, time.Minute, base))
	require.False(t, r.isAllowedAt(dev, 1, time.Minute, base.Add(30*time.Second)))
	// Past the window, the first timestamp has aged out.
	require.True(t, r.isAllowedAt(dev, 1, time.Minute, base.Add(61*time.Second)))
}

func TestRateLimiter_RecordsTimestampRegardlessOfOutcome(t *testing.T) {
	r := NewRateLimiter()
	dev := devKey(3)
	base := time.Now()

	r.isAllowedAt(dev, 0, time.Minute, base)
	require.Equal(t, 1, r.windows[dev].Len())
}

func TestRateLimiter_AtMostLimitTruesInAnySlidingWindow(t *testing.T) {
	r := NewRateLimiter()
	dev := devKey(4)
	limit := 3
	window := time.Second

	base := time.Now()
	trueCount := 0
	var admitted []time.Time
	for i := 0; i < 50; i++ {
		now := base.Add(time.Duration(i) * 20 * time.Millisecond)
		if r.isAllowedAt(dev, limit, window, now) {
			trueCount++
			admitted = append(admitted, now)
		}
	}

	for i := range admitted {
		count := 0
		for j := range admitted {
			if !admitted[j].Before(admitted[i]) && admitted[j].Sub(admitted[i]) < window {
				count++
			}
		}
		require.LessOrEqual(t, count, limit)
	}
}
