// Package errbus is the process-wide channel for store permission errors.
//
// Write call-sites publish *storeerr.PermissionError here instead of knowing
// about presentation; any number of listeners (the SSE stream, a log tap)
// react independently.
package errbus

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"os_escolpi/internal/domain/storeerr"
)

// subscriberBufferSize is the channel buffer for each listener.
const subscriberBufferSize = 16

type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]chan *storeerr.PermissionError
	closed      bool
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string]chan *storeerr.PermissionError)}
}

// Subscribe registers a listener. The subscription is cleaned up when ctx is
// cancelled; Unsubscribe with the returned id also works.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *storeerr.PermissionError, string) {
	subID := uuid.NewString()
	ch := make(chan *storeerr.PermissionError, subscriberBufferSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, subID
	}
	b.subscribers[subID] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.Unsubscribe(subID)
	}()

	return ch, subID
}

// Publish fans the error out to all listeners. Non-blocking: a slow listener
// loses the event rather than stalling the write path.
func (b *Bus) Publish(perr *storeerr.PermissionError) {
	if perr == nil {
		return
	}

	b.mu.RLock()
	targets := make([]chan *storeerr.PermissionError, 0, len(b.subscribers))
	for _, ch := range b.subscribers {
		targets = append(targets, ch)
	}
	b.mu.RUnlock()

	log.Printf("[errbus] permission denied operation=%s path=%s listeners=%d", perr.Operation, perr.Path, len(targets))

	for _, ch := range targets {
		select {
		case ch <- perr:
		default:
			log.Printf("[errbus] dropped permission error for slow listener operation=%s", perr.Operation)
		}
	}
}

func (b *Bus) Unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[subID]
	if !ok {
		return
	}
	delete(b.subscribers, subID)
	close(ch)
}

// Close shuts the bus down and closes all listener channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
