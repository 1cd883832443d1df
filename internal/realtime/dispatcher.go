package realtime

import (
	"encoding/json"
	"log"
)

// NotifyUsers pushes payload to every live event connection of the given
// identities. Duplicate identities are delivered to once, unknown ones are
// skipped. Delivery is best effort: a connection that fails to accept the
// frame is unregistered and the rest still get it.
func (h *Hub) NotifyUsers(identities []string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("NotifyUsers - failed to marshal payload: %v", err)
		return
	}

	seen := make(map[string]struct{}, len(identities))
	for _, identity := range identities {
		if _, ok := seen[identity]; ok {
			continue
		}
		seen[identity] = struct{}{}

		for _, conn := range h.events.Lookup(identity) {
			if err := conn.Send(msg); err != nil {
				h.pruneEvents(identity, conn, err)
				continue
			}
			h.delivered.Add(1)
		}
	}
}

func (h *Hub) pruneEvents(identity string, conn Conn, cause error) {
	if removed := h.dropEvents(identity, conn); removed {
		h.pruned.Add(1)
		log.Printf("Pruned events connection %v of %v: %v", conn.ID(), identity, cause)
	}
}
