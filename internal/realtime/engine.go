package realtime

import (
	"context"
	"errors"
	"log"
	"sync"

	"os_escolpi/internal/auth"
	"os_escolpi/internal/domain/entities"
	"os_escolpi/internal/domain/storeerr"
	"os_escolpi/internal/errbus"
	"os_escolpi/internal/usecase/interfaces"
)

// ErrIdentityNotReady is returned by Subscribe while the identity
// collaborator has not resolved yet; callers should retry once it has.
var ErrIdentityNotReady = errors.New("identity not ready, subscriptions deferred")

// Snapshot is a complete delivery of the current list state. Loading is true
// only until the first read completes; afterwards errors are reported
// alongside the last-known-good list, never by discarding it.
type Snapshot struct {
	Orders  []entities.ServiceOrder
	Loading bool
	Err     error
}

// Engine owns the authoritative local list. Each Subscribe opens one live
// view over the collection: an initial read followed by a full re-read and
// snapshot delivery on every change event.
type Engine struct {
	repo     interfaces.IServiceOrderRepository
	feed     *Broadcaster
	bus      *errbus.Bus
	identity auth.Provider
}

func NewEngine(repo interfaces.IServiceOrderRepository, feed *Broadcaster, bus *errbus.Bus, identity auth.Provider) *Engine {
	return &Engine{repo: repo, feed: feed, bus: bus, identity: identity}
}

// Subscribe starts delivering snapshots to onChange and returns a cancel
// function. Cancel is synchronous: once it returns, no further callbacks
// fire, even for events already in flight. All callbacks for one
// subscription run on a single goroutine, serialized.
func (e *Engine) Subscribe(ctx context.Context, onChange func(Snapshot)) (func(), error) {
	if e.identity != nil && !e.identity.Identity().Ready {
		return nil, ErrIdentityNotReady
	}

	runCtx, stop := context.WithCancel(ctx)
	sub := &subscription{onChange: onChange}
	events, feedID := e.feed.Subscribe(runCtx)

	go e.run(runCtx, sub, events)

	cancel := func() {
		stop()
		e.feed.Unsubscribe(feedID)
		sub.close()
	}
	return cancel, nil
}

func (e *Engine) run(ctx context.Context, sub *subscription, events <-chan ChangeEvent) {
	sub.deliver(Snapshot{Loading: true})

	last := e.read(ctx, sub, nil)

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			last = e.read(ctx, sub, last)
		}
	}
}

// read queries the collection and delivers a snapshot. On failure the
// last-known-good list is kept: permission errors go to the error channel,
// everything else rides on the snapshot's Err field.
func (e *Engine) read(ctx context.Context, sub *subscription, last []entities.ServiceOrder) []entities.ServiceOrder {
	orders, err := e.repo.List(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return last
		}
		if perr, ok := storeerr.AsPermission(err); ok {
			perr.Operation = storeerr.OpListen
			e.bus.Publish(perr)
			sub.deliver(Snapshot{Orders: last})
			return last
		}
		log.Printf("[realtime][engine] list failed path=%s err=%v", e.repo.Path(), err)
		sub.deliver(Snapshot{Orders: last, Err: err})
		return last
	}

	sub.deliver(Snapshot{Orders: orders})
	return orders
}

// subscription guards callback delivery so nothing fires after cancel. The
// mutex also means cancel waits out an in-flight callback before returning.
type subscription struct {
	mu       sync.Mutex
	closed   bool
	onChange func(Snapshot)
}

func (s *subscription) deliver(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.onChange(snap)
}

func (s *subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
