package store

import "sync"

// Notification reports that a batch of events has been committed.
// Seq is the log position after the batch; a subscriber re-running its
// query at or after this point observes the batch's effects.
type Notification struct {
	Seq int64
}

// Subscription delivers change notifications for live queries.
//
// Delivery is coalescing: the channel holds at most one pending
// notification, and a newer batch replaces an uncollected older one. A
// subscriber therefore receives at most one notification per committed
// batch and never misses the latest state, even if it reads slowly.
// Notifications arrive in append order (Seq is non-decreasing).
type Subscription struct {
	ch chan Notification
	id int64
}

// C returns the notification channel. The channel is closed when the
// subscription is cancelled or the store closes.
func (s *Subscription) C() <-chan Notification {
	return s.ch
}

// subscribers is the registry of active subscriptions.
// Broadcast happens under the store's write lock, so notification order
// matches append order.
type subscribers struct {
	mu     sync.Mutex
	nextID int64
	subs   map[int64]*Subscription
	closed bool
}

func newSubscribers() *subscribers {
	return &subscribers{subs: make(map[int64]*Subscription)}
}

// Subscribe registers a live-query subscriber. The caller must eventually
// call Unsubscribe to release it.
func (s *Store) Subscribe() *Subscription {
	return s.subs.add()
}

// Unsubscribe cancels the subscription and closes its channel.
// Safe to call more than once.
func (s *Store) Unsubscribe(sub *Subscription) {
	s.subs.remove(sub)
}

func (r *subscribers) add() *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	sub := &Subscription{
		// Buffer of 1 coalesces bursts without blocking the writer.
		ch: make(chan Notification, 1),
		id: r.nextID,
	}
	if r.closed {
		close(sub.ch)
		return sub
	}
	r.subs[sub.id] = sub
	return sub
}

func (r *subscribers) remove(sub *Subscription) {
	if sub == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[sub.id]; !ok {
		return
	}
	delete(r.subs, sub.id)
	close(sub.ch)
}

// broadcast delivers one notification per subscriber for a committed batch.
// If a subscriber has not collected the previous notification, it is
// replaced with the newer one (latest-wins) so the writer never blocks.
func (r *subscribers) broadcast(seq int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	n := Notification{Seq: seq}
	for _, sub := range r.subs {
		select {
		case sub.ch <- n:
		default:
			// Drop the stale pending notification, then push the new one.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- n:
			default:
			}
		}
	}
}

// closeAll terminates every subscription. Called from Store.Close.
func (r *subscribers) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for id, sub := range r.subs {
		delete(r.subs, id)
		close(sub.ch)
	}
}
