package gengo

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestAsyncDeliversOnce(t *testing.T) {
	ft := &fakeTransport{resp: okResponse(`{"credits":"3","currency":"EUR"}`)}
	c := newTestClient(ft)

	var calls atomic.Int32
	done := make(chan Account, 1)
	Async(context.Background(), c.Balance, func(a Account, err error) {
		calls.Add(1)
		if err != nil {
			t.Errorf("balance: %v", err)
		}
		done <- a
	})

	select {
	case a := <-done:
		if a.Currency != EUR || a.CreditsPresent.String() != "3" {
			t.Fatalf("account=%+v", a)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("completion never delivered")
	}
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != 1 {
		t.Fatalf("calls=%d", calls.Load())
	}
}

func TestAsyncDeliversErrors(t *testing.T) {
	ft := &fakeTransport{err: errors.New("offline")}
	c := newTestClient(ft)
	errs := make(chan error, 1)
	Async(context.Background(), func(ctx context.Context) ([]Language, error) {
		return c.Languages(ctx)
	}, func(_ []Language, err error) { errs <- err })

	select {
	case err := <-errs:
		var te *TransportError
		if !errors.As(err, &te) {
			t.Fatalf("err=%v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("completion never delivered")
	}
}
