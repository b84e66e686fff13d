/*
Package hub contains the core logic of the broadcast hub.

This file defines the Client struct, representing one websocket session. It
manages the connection read/write loops, the inbound event dispatch table,
the tempID ack protocol, and the per-operation admin re-verification guard.
*/
package hub

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	authjwt "kchat/internal/pkg/auth/jwt"
	"kchat/internal/pkg/errs"
	"kchat/internal/pkg/logx"
)

const (
	// timeout for writing to the websocket connection.
	writeWait = 10 * time.Second

	// maximum time to wait for a Pong before considering the peer gone.
	pongWait = 60 * time.Second

	// frequency at which the server sends Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size in bytes of an inbound frame.
	maxFrameSize = 8192

	// sendQueueSize buffers outbound events per client before drops start.
	sendQueueSize = 256
)

// handlerFunc processes one inbound event payload and yields the ack
// payload or a coded error.
type handlerFunc func(payload json.RawMessage) (any, *errs.CustomError)

// Client represents one live connection and its session state.
//
// The identity is self-declared connection metadata used only for scoping
// and rate-limit bucketing; it is not an authentication mechanism. The auth
// token is captured once at connect and re-verified by the guard on every
// privileged operation, because the credential can expire mid-session.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// identity is the `id` cookie value; empty when absent.
	identity string

	// authToken is the raw `auth` cookie value captured at connect.
	authToken string

	// claims caches the last successful verification result. Cleared by the
	// guard on re-verification failure. Never consulted for authorization.
	claims *authjwt.Claims

	// admin marks membership in the admin scope, fixed at registration.
	// Guarded by hub.mu.
	admin bool

	send     chan []byte
	handlers map[EventType]handlerFunc
	logger   zerolog.Logger
}

// NewClient constructs a session for an accepted connection and installs
// its event handlers. Privileged handlers are composed with the
// re-verification guard rather than checking inline.
func NewClient(h *Hub, conn *websocket.Conn, identity, authToken string) *Client {
	c := &Client{
		hub:       h,
		conn:      conn,
		identity:  identity,
		authToken: authToken,
		send:      make(chan []byte, sendQueueSize),
		logger: logx.Logger().With().
			Str("component", "Client").
			Str("identity", identity).
			Logger(),
	}

	c.handlers = map[EventType]handlerFunc{
		EventAddMessage:      c.handleAddMessage,
		EventMeta:            c.handleMeta,
		EventGetMessages:     c.requireAdmin(c.handleGetMessages),
		EventAddMessageAdmin: c.requireAdmin(c.handleAddMessageAdmin),
		EventEditMessage:     c.requireAdmin(c.handleEditMessage),
		EventDeleteMessage:   c.requireAdmin(c.handleDeleteMessage),
		EventGetSettings:     c.requireAdmin(c.handleGetSettings),
		EventSetSettings:     c.requireAdmin(c.handleSetSettings),
		EventAddNotification: c.requireAdmin(c.handleAddNotification),
	}

	return c
}

// requireAdmin wraps a privileged handler with the re-verification guard.
// The captured token is verified against the current secret on every call;
// failure clears the cached claims and fails that single request with an
// auth error. The connection itself stays up with base capabilities.
func (c *Client) requireAdmin(fn handlerFunc) handlerFunc {
	return func(payload json.RawMessage) (any, *errs.CustomError) {
		claims, err := authjwt.ParseToken(c.authToken, c.hub.Settings.Secret())
		if err != nil || !claims.IsAdmin() {
			c.claims = nil
			return nil, errs.NewError(errs.ErrInvalidAuthToken)
		}

		c.claims = claims

		return fn(payload)
	}
}

// ReadPump reads frames from the websocket, dispatches them, and performs
// cleanup when the connection drops. Handlers for one connection run on
// this single goroutine, so commands execute in delivery order.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxFrameSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.ProcessInbound(raw)
	}
}

// cleanupOnDisconnect detaches the session from the hub and closes the
// connection. No rate-limit or message state is torn down; entries persist
// across disconnect and reconnect under the same identity.
func (c *Client) cleanupOnDisconnect() {
	c.hub.Unregister(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Client connection close error")
	}
}

// ProcessInbound decodes one inbound frame, runs the matching handler, and
// sends the ack or error reply.
func (c *Client) ProcessInbound(raw []byte) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid JSON")
		return
	}

	handler, ok := c.handlers[in.Type]
	if !ok {
		c.logger.Warn().Str("event", string(in.Type)).Msg("Client sent unsupported event type")
		c.replyError(in, errs.NewError(errs.ErrUnsupportedEvent))
		return
	}

	ackPayload, cerr := handler(in.Payload)
	if cerr != nil {
		c.replyError(in, cerr)
		return
	}

	if in.TempID != "" {
		c.enqueue(Outbound{Type: EventAck, TempID: in.TempID, Payload: ackPayload})
	}
}

// WritePump writes queued events to the websocket and keeps the heartbeat
// alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case raw, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Error().Err(err).Msg("Error writing close message")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				c.logger.Error().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Error().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}

// enqueue marshals an outbound event onto the send queue, dropping it when
// the queue is full.
func (c *Client) enqueue(out Outbound) {
	raw, err := json.Marshal(out)
	if err != nil {
		c.logger.Error().Err(err).Str("event", string(out.Type)).Msg("Error marshaling outbound event")
		return
	}

	select {
	case c.send <- raw:
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full, dropping event")
	}
}

// replyError surfaces a coded failure to this request's caller only.
func (c *Client) replyError(in Inbound, cerr *errs.CustomError) {
	c.enqueue(Outbound{
		Type:   EventError,
		TempID: in.TempID,
		Error:  &ErrorPayload{Code: cerr.Code, Message: cerr.Message},
	})
}

// handleAddMessage is the base submission path: rate-limited by identity,
// broadcast globally on success, with the sender's updated rate status
// broadcast to its identity scope only.
func (c *Client) handleAddMessage(payload json.RawMessage) (any, *errs.CustomError) {
	var text string
	if err := json.Unmarshal(payload, &text); err != nil {
		return nil, errs.NewError(errs.ErrInvalidPayload)
	}

	delivered := c.hub.SubmitMessage(c.identity, text)

	entry := c.hub.Limiter.GetOrCreate(c.identity)
	c.hub.BroadcastIdentity(c.identity, Outbound{Type: EventMeta, Payload: entry})

	return AddMessageAck{Delivered: delivered, Entry: entry}, nil
}

// handleMeta is a read-only peek at the caller's rate-limit entry. It
// creates the entry when absent but consumes no quota.
func (c *Client) handleMeta(json.RawMessage) (any, *errs.CustomError) {
	return c.hub.Limiter.GetOrCreate(c.identity), nil
}

func (c *Client) handleGetMessages(json.RawMessage) (any, *errs.CustomError) {
	return c.hub.Messages.List(), nil
}

// handleAddMessageAdmin bypasses rate limiting entirely.
func (c *Client) handleAddMessageAdmin(payload json.RawMessage) (any, *errs.CustomError) {
	var text string
	if err := json.Unmarshal(payload, &text); err != nil {
		return nil, errs.NewError(errs.ErrInvalidPayload)
	}

	return DeliveredAck{Delivered: c.hub.SubmitAdminMessage(text)}, nil
}

func (c *Client) handleEditMessage(payload json.RawMessage) (any, *errs.CustomError) {
	var record MessageRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, errs.NewError(errs.ErrInvalidPayload)
	}

	success := c.hub.Messages.Edit(record)
	if success {
		c.hub.BroadcastAll(Outbound{Type: EventEditMessage, Payload: record})
	}

	return SuccessAck{Success: success}, nil
}

// handleDeleteMessage always acks the id, even when it was absent, and
// broadcasts the deletion notice globally.
func (c *Client) handleDeleteMessage(payload json.RawMessage) (any, *errs.CustomError) {
	var id string
	if err := json.Unmarshal(payload, &id); err != nil {
		return nil, errs.NewError(errs.ErrInvalidPayload)
	}

	c.hub.Messages.Delete(id)
	c.hub.BroadcastAll(Outbound{Type: EventDeleteMessage, Payload: id})

	return id, nil
}

func (c *Client) handleGetSettings(json.RawMessage) (any, *errs.CustomError) {
	return c.hub.Settings.Read(), nil
}

// handleSetSettings applies a partial update and, on change, broadcasts the
// full redacted snapshot globally.
func (c *Client) handleSetSettings(payload json.RawMessage) (any, *errs.CustomError) {
	var partial map[string]any
	if err := json.Unmarshal(payload, &partial); err != nil {
		return nil, errs.NewError(errs.ErrInvalidPayload)
	}

	changed := c.hub.Settings.Write(partial)
	if changed {
		c.hub.BroadcastAll(Outbound{Type: EventSettingsChange, Payload: c.hub.Settings.Read()})
	}

	return ChangedAck{Changed: changed}, nil
}

func (c *Client) handleAddNotification(payload json.RawMessage) (any, *errs.CustomError) {
	var p NotificationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errs.NewError(errs.ErrInvalidPayload)
	}

	notification := NewNotification(p.Title, p.Text)
	c.hub.BroadcastAll(Outbound{Type: EventAddNotification, Payload: notification})

	return notification, nil
}
