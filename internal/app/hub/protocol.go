package hub

import "encoding/json"

// EventType names an inbound or outbound hub event. The names match the
// wire protocol of the web client.
type EventType string

// Inbound event types. The admin set requires the re-verification guard.
const (
	EventAddMessage      EventType = "add message"
	EventMeta            EventType = "meta"
	EventGetMessages     EventType = "get messages"
	EventAddMessageAdmin EventType = "add message admin"
	EventEditMessage     EventType = "edit message"
	EventDeleteMessage   EventType = "delete message"
	EventGetSettings     EventType = "get settings"
	EventSetSettings     EventType = "set settings"
	EventAddNotification EventType = "add notification"
)

// Outbound-only event types.
const (
	EventNewMessage     EventType = "new message"
	EventSettingsChange EventType = "settings change"
	EventAck            EventType = "ack"
	EventError          EventType = "error"
)

// Inbound is the framing for every client-to-server websocket message.
// TempID, when set, asks for an ack mirroring it back.
type Inbound struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	TempID  string          `json:"tempID,omitempty"`
}

// Outbound is the framing for every server-to-client websocket message:
// broadcasts, acks (Type "ack" with the request's TempID), and errors.
type Outbound struct {
	Type    EventType     `json:"type"`
	Payload any           `json:"payload,omitempty"`
	TempID  string        `json:"tempID,omitempty"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

// ErrorPayload carries a coded failure to the requesting client.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddMessageAck is the ack payload of `add message`: whether the message
// was delivered, plus the sender's rate-limit entry after the attempt.
type AddMessageAck struct {
	Delivered bool      `json:"delivered"`
	Entry     RateEntry `json:"entry"`
}

// NotificationPayload is the inbound payload of `add notification`.
type NotificationPayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ChangedAck is the ack payload of `set settings`.
type ChangedAck struct {
	Changed bool `json:"changed"`
}

// DeliveredAck is the ack payload of `add message admin`.
type DeliveredAck struct {
	Delivered bool `json:"delivered"`
}

// SuccessAck is the ack payload of `edit message`.
type SuccessAck struct {
	Success bool `json:"success"`
}
