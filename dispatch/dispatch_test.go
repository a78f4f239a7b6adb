package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	solana "github.com/dfuse-io/solana-go"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	name  string
	delay time.Duration
	sig   solana.Signature
	err   error
}

func (f *fakeSender) Name() string { return f.name }

func (f *fakeSender) Send(ctx context.Context, _ *solana.Transaction, _ string) (solana.Signature, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return solana.Signature{}, ctx.Err()
	}
	if f.err != nil {
		return solana.Signature{}, f.err
	}
	return f.sig, nil
}

func testTransaction(t *testing.T) *solana.Transaction {
	t.Helper()
	_, payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	tx, err := solana.NewTransaction(nil, solana.Hash{}, solana.TransactionPayer(payer.PublicKey()))
	require.NoError(t, err)
	return tx
}

func TestDispatch_FirstSuccessWins(t *testing.T) {
	var wantSig solana.Signature
	wantSig[0] = 0x9

	slow := &fakeSender{name: "slow", delay: 50 * time.Millisecond, sig: solana.Signature{1}}
	fast := &fakeSender{name: "fast", delay: time.Millisecond, sig: wantSig}

	d := New(slow, fast)
	sig, err := d.Dispatch(context.Background(), testTransaction(t))
	require.NoError(t, err)
	require.Equal(t, wantSig, sig)
}

func TestDispatch_AllFailReturnsError(t *testing.T) {
	a := &fakeSender{name: "a", err: errors.New("boom a")}
	b := &fakeSender{name: "b", err: errors.New("boom b")}

	d := New(a, b)
	_, err := d.Dispatch(context.Background(), testTransaction(t))
	require.Error(t, err)
}

func TestDispatch_AllFailReturnsLastError(t *testing.T) {
	first := &fakeSender{name: "first", err: errors.New("boom first")}
	last := &fakeSender{name: "last", delay: 20 * time.Millisecond, err: errors.New("boom last")}

	d := New(first, last)
	_, err := d.Dispatch(context.Background(), testTransaction(t))
	require.ErrorContains(t, err, "boom last")
	require.NotContains(t, err.Error(), "boom first")
}

func TestDispatch_SucceedsDespiteOtherFailures(t *testing.T) {
	good := &fakeSender{name: "good", sig: solana.Signature{7}}
	bad := &fakeSender{name: "bad", err: errors.New("boom")}

	d := New(good, bad)
	sig, err := d.Dispatch(context.Background(), testTransaction(t))
	require.NoError(t, err)
	require.Equal(t, solana.Signature{7}, sig)
}

func TestDispatch_NoSendersErrors(t *testing.T) {
	d := New()
	_, err := d.Dispatch(context.Background(), testTransaction(t))
	require.Error(t, err)
}
