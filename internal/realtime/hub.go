package realtime

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// Notification is a local notification raised on behalf of one session.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// sessionBufferSize bounds the per-session snapshot and notification queues.
const sessionBufferSize = 16

// ErrSessionExists rejects a second concurrent subscription for one session:
// exactly one live view per mounted client.
var ErrSessionExists = errors.New("session already has an active subscription")

// Session is one connected client's live view: ordered snapshots, its own
// change notifications, and its own suppression state.
type Session struct {
	ID            string
	Snapshots     chan Snapshot
	Notifications chan Notification

	notifier *Notifier
	cancel   func()
}

// Hub tracks active sessions so the write path can register "just created by
// me" markers with the notifier of the session that originated the write.
type Hub struct {
	mu       sync.Mutex
	engine   *Engine
	window   time.Duration
	sessions map[string]*Session
}

func NewHub(engine *Engine, suppressionWindow time.Duration) *Hub {
	return &Hub{
		engine:   engine,
		window:   suppressionWindow,
		sessions: make(map[string]*Session),
	}
}

// Open subscribes a session to the sync engine. Snapshots and notifications
// are queued on the returned session's channels; the caller must drain them
// and call Close when done. The lock is held through the subscribe so two
// concurrent Opens for one session id can never both claim the slot; the
// engine callback runs on its own goroutine and never takes h.mu, so this
// cannot deadlock.
func (h *Hub) Open(ctx context.Context, sessionID string) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[sessionID]; ok {
		return nil, ErrSessionExists
	}

	s := &Session{
		ID:            sessionID,
		Snapshots:     make(chan Snapshot, sessionBufferSize),
		Notifications: make(chan Notification, sessionBufferSize),
	}
	s.notifier = NewNotifier(sessionSink{s}, h.window)

	cancel, err := h.engine.Subscribe(ctx, func(snap Snapshot) {
		if !snap.Loading && snap.Err == nil {
			s.notifier.Observe(snap.Orders)
		}
		select {
		case s.Snapshots <- snap:
		default:
			log.Printf("[realtime][hub] dropped snapshot for slow session id=%s", s.ID)
		}
	})
	if err != nil {
		return nil, err
	}
	s.cancel = cancel
	h.sessions[sessionID] = s

	log.Printf("[realtime][hub] session opened id=%s", sessionID)
	return s, nil
}

// MarkCreated registers a suppression marker on the originating session. A
// no-op for unknown sessions (e.g. a client that never opened a stream).
func (h *Hub) MarkCreated(sessionID, orderID string) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if !ok {
		return
	}
	s.notifier.MarkCreated(orderID)
}

// Close stops the session's subscription synchronously: once it returns no
// further snapshots or notifications are queued.
func (h *Hub) Close(sessionID string) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	if ok {
		delete(h.sessions, sessionID)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	s.cancel()
	log.Printf("[realtime][hub] session closed id=%s", sessionID)
}

// sessionSink queues notifications for one session, dropping on overflow so
// a stalled consumer never blocks the snapshot path.
type sessionSink struct {
	s *Session
}

func (k sessionSink) Notify(title, body string) {
	select {
	case k.s.Notifications <- Notification{Title: title, Body: body}:
	default:
		log.Printf("[realtime][hub] dropped notification for slow session id=%s title=%s", k.s.ID, title)
	}
}
