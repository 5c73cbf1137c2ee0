package mas

import (
	"fmt"
	"time"

	"github.com/agentica-go/agentica/core"
)

// Broadcast is the reserved receiver that delivers a message to every
// registered participant except the sender.
const Broadcast = "ALL"

// MessageType classifies inter-agent messages for handler dispatch.
type MessageType string

// Message types exchanged in the warehouse.
const (
	MsgOrderRequest         MessageType = "ORDER_REQUEST"
	MsgPickRequest          MessageType = "PICK_REQUEST"
	MsgTransportRequest     MessageType = "TRANSPORT_REQUEST"
	MsgPickupReady          MessageType = "PICKUP_READY"
	MsgCollaborationRequest MessageType = "COLLABORATION_REQUEST"
	MsgResourceRequest      MessageType = "RESOURCE_REQUEST"
	MsgStatusUpdate         MessageType = "STATUS_UPDATE"
)

// Message is one unit of inter-agent communication. Content carries the
// typed payload under well-known keys ("order", "items", "location", ...);
// handlers assert the types they expect and ignore what they don't.
type Message struct {
	ID        string         `json:"id"`
	Sender    string         `json:"sender"`
	Receiver  string         `json:"receiver"`
	Type      MessageType    `json:"type"`
	Content   map[string]any `json:"content,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewMessage creates a message from sender to receiver. Receiver may be a
// participant ID or Broadcast.
func NewMessage(sender, receiver string, t MessageType, content map[string]any) Message {
	return Message{
		ID:        core.NewID(),
		Sender:    sender,
		Receiver:  receiver,
		Type:      t,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// String renders the message for logs, e.g. "PICK_REQUEST COORD_01→PICKER_01".
func (m Message) String() string {
	return fmt.Sprintf("%s %s→%s", m.Type, m.Sender, m.Receiver)
}
