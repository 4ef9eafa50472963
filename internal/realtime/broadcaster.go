// Package realtime keeps locally rendered service order lists consistent
// with the remote collection: an in-memory change feed, a sync engine that
// delivers full list snapshots, and a notifier that raises local
// notifications for records created elsewhere.
//
// Known limitation: concurrent edits of the same order from multiple devices
// are last-write-wins; there is no merge or conflict detection.
package realtime

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// ChangeType mirrors the operation kinds the store's change feed reports.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeModify ChangeType = "MODIFY"
	ChangeRemove ChangeType = "REMOVE"
)

// ChangeEvent signals that the service order collection changed. It carries
// no document data: subscribers re-read the collection and work with full
// snapshots, never deltas.
type ChangeEvent struct {
	Type    ChangeType
	OrderID string
}

// subscriberBufferSize is the channel buffer for each subscriber.
const subscriberBufferSize = 64

// Broadcaster is the in-memory fan-out for collection change events. Local
// writes publish here directly; the optional DynamoDB Streams poller feeds
// the same broadcaster for cross-process changes.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan ChangeEvent
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[string]chan ChangeEvent)}
}

// Subscribe registers a subscriber and returns its event channel plus an id
// for later unsubscription. The subscription is cleaned up automatically
// when ctx is cancelled.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan ChangeEvent, string) {
	subID := uuid.NewString()
	ch := make(chan ChangeEvent, subscriberBufferSize)

	b.mu.Lock()
	b.subscribers[subID] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.Unsubscribe(subID)
	}()

	return ch, subID
}

// Publish sends the event to every subscriber. Non-blocking: slow
// subscribers drop events, which is safe because the engine re-reads the
// whole collection on the next event anyway.
func (b *Broadcaster) Publish(ev ChangeEvent) {
	b.mu.RLock()
	targets := make([]chan ChangeEvent, 0, len(b.subscribers))
	for _, ch := range b.subscribers {
		targets = append(targets, ch)
	}
	b.mu.RUnlock()

	for _, ch := range targets {
		select {
		case ch <- ev:
		default:
			log.Printf("[realtime][feed] dropped change event for slow subscriber type=%s order_id=%s", ev.Type, ev.OrderID)
		}
	}
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[subID]
	if !ok {
		return
	}
	delete(b.subscribers, subID)
	close(ch)
}

// Close shuts down the broadcaster and closes all subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
