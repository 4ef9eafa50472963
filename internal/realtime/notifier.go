package realtime

import (
	"sync"
	"time"

	"os_escolpi/internal/domain/entities"
	"os_escolpi/internal/usecase/interfaces"
)

// defaultSuppressionWindow absorbs the round-trip echo of a local write
// without suppressing an independent creation arriving later.
const defaultSuppressionWindow = time.Second

// Notifier tells "the list just got populated" apart from "a new order
// arrived while we were watching", and skips orders this session created
// itself. All state is instance-scoped so multiple sessions (or tests) never
// cross-contaminate.
type Notifier struct {
	mu            sync.Mutex
	sink          interfaces.INotificationSink
	window        time.Duration
	now           func() time.Time
	firstLoadDone bool
	prevLen       int
	suppressed    map[string]time.Time
}

func NewNotifier(sink interfaces.INotificationSink, window time.Duration) *Notifier {
	if window <= 0 {
		window = defaultSuppressionWindow
	}
	return &Notifier{
		sink:       sink,
		window:     window,
		now:        time.Now,
		suppressed: make(map[string]time.Time),
	}
}

// MarkCreated registers the suppression marker for an order this session
// just wrote. The marker expires after the window, or earlier when its echo
// snapshot is observed.
func (n *Notifier) MarkCreated(orderID string) {
	if orderID == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.suppressed[orderID] = n.now().Add(n.window)
}

// Observe inspects a snapshot list (newest first). The first observation
// only records the length: notifying on the initial page load would raise a
// storm for pre-existing orders. Afterwards a growth in length means the
// head of the list is new; it is announced unless this session authored it.
// Deletions never notify.
func (n *Notifier) Observe(orders []entities.ServiceOrder) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.firstLoadDone {
		n.firstLoadDone = true
		n.prevLen = len(orders)
		return
	}

	if len(orders) > n.prevLen {
		head := orders[0]
		if n.consumeMarker(head.ID) {
			// Own write echoed back; stay quiet.
		} else if n.sink != nil {
			n.sink.Notify("Nova Ordem de Serviço", "Cliente: "+head.ClientName)
		}
	}

	n.prevLen = len(orders)
}

// consumeMarker reports whether the id carries a live suppression marker,
// clearing it on hit and pruning expired entries. Callers hold n.mu.
func (n *Notifier) consumeMarker(orderID string) bool {
	now := n.now()
	for id, exp := range n.suppressed {
		if now.After(exp) {
			delete(n.suppressed, id)
		}
	}

	exp, ok := n.suppressed[orderID]
	if !ok || now.After(exp) {
		return false
	}
	delete(n.suppressed, orderID)
	return true
}
