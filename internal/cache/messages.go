package cache

import "sync"

// Message is a control message exchanged between the controller and its
// client pages. Communication is message passing only; no state is shared.
type Message struct {
	// Type is the recognized message tag.
	Type string `json:"type"`
}

const (
	// MsgForceUpdate commands the controller to drop every cache container.
	MsgForceUpdate = "FORCE_UPDATE"
	// MsgCacheCleared notifies clients that the cache was cleared and a
	// reload will fetch fresh resources.
	MsgCacheCleared = "CACHE_CLEARED"
)

// Registry tracks subscribed client pages for broadcast notifications.
type Registry struct {
	mu   sync.Mutex
	subs map[chan Message]struct{}
}

// NewRegistry returns an empty client registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[chan Message]struct{})}
}

// Subscribe registers a client. The returned cancel function removes it.
func (r *Registry) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, 4)
	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()
	cancel := func() {
		r.mu.Lock()
		delete(r.subs, ch)
		r.mu.Unlock()
	}
	return ch, cancel
}

// Len returns the number of subscribed clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Broadcast delivers msg to every subscribed client without blocking on
// slow receivers.
func (r *Registry) Broadcast(msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ch := range r.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}
