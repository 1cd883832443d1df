package realtime

import "log"

// RelayCall forwards msg unchanged to every connection in the room except the
// sender. Signaling content is never inspected.
func (h *Hub) RelayCall(roomID string, sender Conn, msg []byte) {
	for _, conn := range h.calls.Lookup(roomID) {
		if conn == sender {
			continue
		}
		if err := conn.Send(msg); err != nil {
			if removed, _ := h.calls.Unregister(roomID, conn); removed {
				h.pruned.Add(1)
				log.Printf("Pruned call connection %v from room %v: %v", conn.ID(), roomID, err)
			}
			continue
		}
		h.relayed.Add(1)
	}
}
