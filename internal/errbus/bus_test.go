package errbus

import (
	"context"
	"testing"
	"time"

	"os_escolpi/internal/domain/storeerr"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	b := NewBus()
	defer b.Close()

	ch1, _ := b.Subscribe(t.Context())
	ch2, _ := b.Subscribe(t.Context())

	perr := &storeerr.PermissionError{Operation: storeerr.OpCreate, Path: "service_orders/public"}
	b.Publish(perr)

	for i, ch := range []<-chan *storeerr.PermissionError{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, storeerr.OpCreate, got.Operation, "subscriber %d", i)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d timed out", i)
		}
	}
}

func TestBus_PublishNilIsNoOp(t *testing.T) {
	b := NewBus()
	defer b.Close()

	ch, _ := b.Subscribe(t.Context())
	b.Publish(nil)

	select {
	case got := <-ch:
		t.Fatalf("unexpected delivery: %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBus()
	defer b.Close()

	ch, id := b.Subscribe(t.Context())
	b.Unsubscribe(id)

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}
}

func TestBus_ContextCancelUnsubscribes(t *testing.T) {
	b := NewBus()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := b.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after context cancel")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}

func TestBus_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := NewBus()
	defer b.Close()

	_, _ = b.Subscribe(t.Context()) // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBufferSize*2; i++ {
			b.Publish(&storeerr.PermissionError{Operation: storeerr.OpUpdate, Path: "service_orders/public"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestBus_SubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	b := NewBus()
	b.Close()

	ch, _ := b.Subscribe(t.Context())
	_, ok := <-ch
	assert.False(t, ok)
}
