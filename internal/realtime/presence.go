package realtime

import "sync"

// PresenceTracker is told when an identity gains its first event connection
// or loses its last one.
type PresenceTracker interface {
	SetOnline(identity string)
	SetOffline(identity string)
}

// presenceQueue reports presence changes from a single goroutine. Identities
// are coalesced while pending and the registry is read at report time, so the
// last report for an identity matches its live connections.
type presenceQueue struct {
	tracker PresenceTracker
	online  func(identity string) bool

	mu      sync.Mutex
	pending map[string]struct{}
	order   []string
	wake    chan struct{}

	// owned by run
	reported map[string]bool
}

func newPresenceQueue(tracker PresenceTracker, online func(identity string) bool) *presenceQueue {
	q := &presenceQueue{
		tracker:  tracker,
		online:   online,
		pending:  make(map[string]struct{}),
		wake:     make(chan struct{}, 1),
		reported: make(map[string]bool),
	}
	go q.run()
	return q
}

// mark schedules identity for a presence check. It never blocks.
func (q *presenceQueue) mark(identity string) {
	q.mu.Lock()
	if _, ok := q.pending[identity]; !ok {
		q.pending[identity] = struct{}{}
		q.order = append(q.order, identity)
	}
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *presenceQueue) run() {
	for range q.wake {
		for _, identity := range q.take() {
			q.report(identity)
		}
	}
}

func (q *presenceQueue) take() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.order
	q.order = nil
	clear(q.pending)
	return batch
}

func (q *presenceQueue) report(identity string) {
	online := q.online(identity)
	if q.reported[identity] == online {
		return
	}
	if online {
		q.reported[identity] = true
		q.tracker.SetOnline(identity)
		return
	}
	delete(q.reported, identity)
	q.tracker.SetOffline(identity)
}
