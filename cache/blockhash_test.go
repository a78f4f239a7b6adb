package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/reactorlabs/pumpfun-sniper/types"
	"github.com/stretchr/testify/require"
)

func TestBlockhashCache_EmptyUntilFirstUpdate(t *testing.T) {
	c := NewBlockhashCache()
	_, ok := c.Latest()
	require.False(t, ok)

	var h types.Blockhash
	h[0] = 0xAA
	c.Update(h)

	got, ok := c.Latest()
	require.True(t, ok)
	require.Equal(t, h, got)
}

func TestBlockhashCache_NeverRollsBack(t *testing.T) {
	c := NewBlockhashCache()
	var h1, h2 types.Blockhash
	h1[0] = 1
	h2[0] = 2

	c.Update(h1)
	c.Update(h2)
	got, ok := c.Latest()
	require.True(t, ok)
	require.Equal(t, h2, got)
}

type fakeBlockhashSource struct {
	calls int32
	fail  bool
	hash  types.Blockhash
}

func (f *fakeBlockhashSource) LatestBlockhash(ctx context.Context) (types.Blockhash, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.fail {
		return types.Blockhash{}, errors.New("rpc down")
	}
	return f.hash, nil
}

func TestBlockhashCache_RetainsValueOnRefreshFailure(t *testing.T) {
	c := NewBlockhashCache()
	var h types.Blockhash
	h[0] = 9
	c.Update(h)

	src := &fakeBlockhashSource{fail: true}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go c.SpawnUpdater(ctx, src, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	got, ok := c.Latest()
	require.True(t, ok)
	require.Equal(t, h, got)
	require.Greater(t, atomic.LoadInt32(&src.calls), int32(0))
}

func TestBlockhashCache_SubscribeObservesUpdate(t *testing.T) {
	c := NewBlockhashCache()
	ch := make(chan types.Blockhash, 1)
	sub := c.Subscribe(ch)
	defer sub.Unsubscribe()

	var h types.Blockhash
	h[0] = 7
	c.Update(h)

	select {
	case got := <-ch:
		require.Equal(t, h, got)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for blockhash update notification")
	}
}
