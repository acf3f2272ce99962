package store

import (
	"sync"

	"github.com/google/uuid"
)

// LoadFunc produces the full current result set for a subscription.
type LoadFunc func() (interface{}, error)

type subscriber struct {
	userID     uint
	collection string
	load       LoadFunc
	onChange   func(snapshot interface{})
}

// Hub fans result-set snapshots out to realtime listeners. Every
// Broadcast re-runs each matching subscriber's loader and delivers the
// fresh snapshot, so a consumer may see the same data twice and must
// treat delivery as idempotent.
//
// Delivery happens under the hub lock: once an unsubscribe returns, no
// further callback runs. Callbacks must not call back into the hub.
type Hub struct {
	mu   sync.Mutex
	subs map[string]*subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]*subscriber)}
}

// Subscribe registers a listener for one user's collection and pushes
// the initial snapshot before returning. The returned function cancels
// the subscription and is safe to call more than once.
func (h *Hub) Subscribe(userID uint, collection string, load LoadFunc, onChange func(interface{})) func() {
	key := uuid.NewString()
	sub := &subscriber{userID: userID, collection: collection, load: load, onChange: onChange}

	h.mu.Lock()
	h.subs[key] = sub
	deliver(sub)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, key)
			h.mu.Unlock()
		})
	}
}

// Broadcast notifies every subscriber of the user's collection that the
// underlying data changed.
func (h *Hub) Broadcast(userID uint, collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if sub.userID == userID && sub.collection == collection {
			deliver(sub)
		}
	}
}

func deliver(sub *subscriber) {
	snapshot, err := sub.load()
	if err != nil {
		// A failed reload drops this push; the next broadcast retries.
		return
	}
	sub.onChange(snapshot)
}
