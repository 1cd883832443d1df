package realtime

import (
	"log"
	"sync/atomic"
)

// Hub owns the event and call registries. Create one per process and hand it
// to every connection handler; its state empties as connections close.
// Presence is reported asynchronously and follows the events registry.
type Hub struct {
	events   *Registry
	calls    *Registry
	presence *presenceQueue

	delivered atomic.Uint64
	pruned    atomic.Uint64
	relayed   atomic.Uint64
}

type Option func(*Hub)

func WithPresence(tracker PresenceTracker) Option {
	return func(h *Hub) {
		h.presence = newPresenceQueue(tracker, func(identity string) bool {
			return len(h.events.Lookup(identity)) > 0
		})
	}
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		events: NewRegistry(),
		calls:  NewRegistry(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ConnectEvents registers an already accepted connection under identity.
func (h *Hub) ConnectEvents(identity string, conn Conn) {
	if first := h.events.Register(identity, conn); first && h.presence != nil {
		h.presence.mark(identity)
	}
	log.Printf("Events connection %v registered for %v", conn.ID(), identity)
}

// DisconnectEvents is idempotent.
func (h *Hub) DisconnectEvents(identity string, conn Conn) {
	if removed := h.dropEvents(identity, conn); removed {
		log.Printf("Events connection %v unregistered for %v", conn.ID(), identity)
	}
}

func (h *Hub) dropEvents(identity string, conn Conn) bool {
	removed, last := h.events.Unregister(identity, conn)
	if last && h.presence != nil {
		h.presence.mark(identity)
	}
	return removed
}

func (h *Hub) ConnectCall(roomID string, conn Conn) {
	h.calls.Register(roomID, conn)
	log.Printf("Call connection %v joined room %v", conn.ID(), roomID)
}

// DisconnectCall is idempotent.
func (h *Hub) DisconnectCall(roomID string, conn Conn) {
	if removed, _ := h.calls.Unregister(roomID, conn); removed {
		log.Printf("Call connection %v left room %v", conn.ID(), roomID)
	}
}

// LookupEvents returns a snapshot of the event connections of identity.
func (h *Hub) LookupEvents(identity string) []Conn {
	return h.events.Lookup(identity)
}

// LookupCall returns a snapshot of the connections in a call room.
func (h *Hub) LookupCall(roomID string) []Conn {
	return h.calls.Lookup(roomID)
}

type Stats struct {
	Identities       int
	EventConnections int
	Rooms            int
	CallConnections  int
	Delivered        uint64
	Pruned           uint64
	Relayed          uint64
}

func (h *Hub) Stats() Stats {
	return Stats{
		Identities:       h.events.Len(),
		EventConnections: h.events.Count(),
		Rooms:            h.calls.Len(),
		CallConnections:  h.calls.Count(),
		Delivered:        h.delivered.Load(),
		Pruned:           h.pruned.Load(),
		Relayed:          h.relayed.Load(),
	}
}
