package events

import (
	"testing"
	"time"

	"github.com/reactorlabs/pumpfun-sniper/types"
	"github.com/stretchr/testify/require"
)

func TestUnboundedQueue_FIFO(t *testing.T) {
	q := newUnboundedQueue()
	var a, b types.PublicKey
	a[0], b[0] = 1, 2
	q.push(types.TokenEvent{Mint: a})
	q.push(types.TokenEvent{Mint: b})

	first, ok := q.pop()
	require.True(t, ok)
	require.Equal(t, a, first.Mint)

	second, ok := q.pop()
	require.True(t, ok)
	require.Equal(t, b, second.Mint)
}

func TestUnboundedQueue_CloseDrainsThenReturnsFalse(t *testing.T) {
	q := newUnboundedQueue()
	var m types.PublicKey
	m[0] = 9
	q.push(types.TokenEvent{Mint: m})
	q.close()

	ev, ok := q.pop()
	require.True(t, ok)
	require.Equal(t, m, ev.Mint)

	_, ok = q.pop()
	require.False(t, ok)
}

func TestUnboundedQueue_PushAfterCloseIsDropped(t *testing.T) {
	q := newUnboundedQueue()
	q.close()
	accepted := q.push(types.TokenEvent{})
	require.False(t, accepted)

	_, ok := q.pop()
	require.False(t, ok)
}

func TestUnboundedQueue_PushBeforeCloseReportsAccepted(t *testing.T) {
	q := newUnboundedQueue()
	require.True(t, q.push(types.TokenEvent{}))
}

func TestUnboundedQueue_AsChannel(t *testing.T) {
	q := newUnboundedQueue()
	ch := q.asChannel()

	var m types.PublicKey
	m[0] = 3
	q.push(types.TokenEvent{Mint: m})

	select {
	case ev := <-ch:
		require.Equal(t, m, ev.Mint)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	q.close()
	_, ok := <-ch
	require.False(t, ok)
}
