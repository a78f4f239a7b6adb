package events

import (
	"context"
	"testing"
	"time"

	"github.com/reactorlabs/pumpfun-sniper/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSubscriber struct {
	name   string
	events []types.TokenEvent
}

func (f *fakeSubscriber) Name() string { return f.name }

func (f *fakeSubscriber) Run(ctx context.Context, push func(types.TokenEvent) bool) {
	for _, ev := range f.events {
		if !push(ev) {
			return
		}
	}
	<-ctx.Done()
}

func TestSupervisor_MergesAllSubscribers(t *testing.T) {
	var m1, m2, m3 types.PublicKey
	m1[0], m2[0], m3[0] = 1, 2, 3

	subA := &fakeSubscriber{name: "a", events: []types.TokenEvent{{Mint: m1}, {Mint: m2}}}
	subB := &fakeSubscriber{name: "b", events: []types.TokenEvent{{Mint: m3}}}

	sup := NewSupervisor(subA, subB)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := sup.Start(ctx)

	seen := map[types.PublicKey]bool{}
	for i := 0; i < 3; i++ {
		select {
		case ev := <-ch:
			seen[ev.Mint] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for merged event")
		}
	}

	require.True(t, seen[m1])
	require.True(t, seen[m2])
	require.True(t, seen[m3])
}

func TestSupervisor_NoSubscribersClosesChannel(t *testing.T) {
	sup := NewSupervisor()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := sup.Start(ctx)
	_, ok := <-ch
	require.False(t, ok)
}
