// file: websocket/messenger.go
package websocket

import (
	"encoding/json"

	"civil-quest-admin/listview"
	"civil-quest-admin/logger"
	"civil-quest-admin/services"
)

var _ listview.Observer = (*Hub)(nil)

// Message is the JSON pushed to tabs.
type Message struct {
	Action     string `json:"action"`
	Collection string `json:"collection"`
	TargetID   string `json:"targetId,omitempty"`
	Items      any    `json:"items"`
	Error      string `json:"error,omitempty"`
	Reverted   bool   `json:"reverted,omitempty"`
}

// Send queues msg without blocking; a full queue drops it.
func (h *Hub) Send(owner, collection string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error.Printf("[Hub.Send] Error marshalling %s message: %v", collection, err)
		return
	}
	select {
	case h.broadcast <- outbound{owner: owner, collection: collection, data: data}:
	default:
		logger.Warn.Printf("[Hub.Send] Broadcast queue full; dropping %s %s", collection, msg.Action)
	}
}

// Observe forwards every snapshot change to the owner's open tabs.
func (h *Hub) Observe(ch listview.Change) {
	msg := Message{
		Action:     string(ch.Kind),
		Collection: ch.Collection,
		TargetID:   ch.TargetID,
		Items:      ch.Items,
		Reverted:   ch.Reverted,
	}
	if ch.Err != nil {
		msg.Error = services.Message(ch.Err)
	}
	h.Send(ch.Owner, ch.Collection, msg)
}
