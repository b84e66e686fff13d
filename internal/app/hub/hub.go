/*
Package hub contains the core logic of the broadcast hub.

This file defines the Hub struct: the session registry holding every live
connection, the shared stores (message history, rate limiter, settings), and
the scoped broadcast primitives (global, per-identity, admin-only).
*/
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	authjwt "kchat/internal/pkg/auth/jwt"
	"kchat/internal/pkg/logx"
)

// Options carries the initial runtime settings for a Hub.
type Options struct {
	// MessagesPerInterval is the initial per-identity submission quota.
	MessagesPerInterval int

	// MessagesIntervalLength is the initial rate-limit window length.
	MessagesIntervalLength time.Duration

	// MaxMessageLength is the initial message truncation bound in runes.
	MaxMessageLength int

	// Secret is the initial credential verification key.
	Secret string
}

// Hub owns the process-wide state of the broadcast system and the set of
// live client sessions. The stores are injected into each client session at
// construction rather than reached through globals, so they can be swapped
// or inspected in tests.
type Hub struct {
	// Messages is the rolling public history.
	Messages *MessageStore

	// Limiter is the per-identity fixed-window submission limiter.
	Limiter *RateLimiter

	// Settings is the runtime configuration gateway.
	Settings *Settings

	// mu protects clients and each client's admin flag.
	mu      sync.RWMutex
	clients map[*Client]struct{}

	dispatcher *Dispatcher
	logger     zerolog.Logger
}

// New constructs a Hub, wiring settings change events to the stores they
// reconfigure: quota and window length feed the rate limiter, the length
// bound feeds the message store.
func New(opts Options) *Hub {
	dispatcher := NewDispatcher()

	h := &Hub{
		Messages:   NewMessageStore(opts.MaxMessageLength),
		Limiter:    NewRateLimiter(opts.MessagesIntervalLength, opts.MessagesPerInterval),
		Settings:   NewSettings(opts.MessagesPerInterval, opts.MessagesIntervalLength, opts.MaxMessageLength, opts.Secret, dispatcher),
		clients:    make(map[*Client]struct{}),
		dispatcher: dispatcher,
		logger:     logx.Logger().With().Str("component", "Hub").Logger(),
	}

	dispatcher.Subscribe(TopicMessagesPerInterval, func(v any) {
		if quota, ok := v.(int); ok {
			h.Limiter.SetQuota(quota)
		}
	})

	dispatcher.Subscribe(TopicMessagesIntervalLength, func(v any) {
		if interval, ok := v.(time.Duration); ok {
			h.Limiter.SetInterval(interval)
		}
	})

	dispatcher.Subscribe(TopicMaxMessageLength, func(v any) {
		if n, ok := v.(int); ok {
			h.Messages.SetMaxTextLength(n)
		}
	})

	return h
}

// Register adds a client session to the hub and attempts privilege
// verification. The client is a member of its identity scope from this
// point regardless of the verification outcome; a verification failure is
// silent and leaves the connection anonymous.
func (h *Hub) Register(c *Client) {
	admin := false
	if c.authToken != "" {
		claims, err := authjwt.ParseToken(c.authToken, h.Settings.Secret())
		if err == nil && claims.IsAdmin() {
			c.claims = claims
			admin = true
		}
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	c.admin = admin
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().
		Str("identity", c.identity).
		Bool("admin", admin).
		Int("total_clients", total).
		Msg("Client registered.")
}

// Unregister removes a client session. Rate-limit entries and message state
// survive the disconnect; only event delivery stops.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	h.logger.Info().
		Str("identity", c.identity).
		Msg("Client unregistered.")
}

// Shutdown detaches every live session. Closing each send queue makes the
// session's write pump deliver a websocket close frame before the connection
// drops; hijacked connections are not covered by http.Server.Shutdown, so
// this is the only orderly teardown path they get.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	total := len(h.clients)
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	h.logger.Info().
		Int("clients_closed", total).
		Msg("Hub shutdown complete.")
}

// SubmitMessage handles a rate-limited submission for the given identity:
// consult the limiter, store, consume one attempt, broadcast globally.
// Returns false without storing or broadcasting when the identity's window
// is exhausted or the text is rejected.
func (h *Hub) SubmitMessage(identity, text string) bool {
	entry := h.Limiter.GetOrCreate(identity)
	if !entry.Can {
		return false
	}

	record, ok := h.Messages.Add(text)
	if !ok {
		return false
	}

	h.Limiter.Update(identity)

	h.BroadcastAll(Outbound{Type: EventNewMessage, Payload: record})

	return true
}

// SubmitAdminMessage handles an admin-originated submission: no identity
// bucket is consulted and no quota is consumed.
func (h *Hub) SubmitAdminMessage(text string) bool {
	record, ok := h.Messages.Add(text)
	if !ok {
		return false
	}

	h.BroadcastAll(Outbound{Type: EventNewMessage, Payload: record})

	return true
}

// BroadcastAll delivers an event to every connected client.
func (h *Hub) BroadcastAll(out Outbound) {
	h.broadcast(out, func(*Client) bool { return true })
}

// BroadcastIdentity delivers an event to every connection sharing the given
// identity value. Used for rate-limit status so other users never see a
// stranger's remaining quota.
func (h *Hub) BroadcastIdentity(identity string, out Outbound) {
	h.broadcast(out, func(c *Client) bool { return c.identity == identity })
}

// BroadcastAdmins delivers an event to every privileged connection.
func (h *Hub) BroadcastAdmins(out Outbound) {
	h.broadcast(out, func(c *Client) bool { return c.admin })
}

// broadcast marshals once and fans out to every client matching the scope
// predicate, dropping the event for slow consumers.
func (h *Hub) broadcast(out Outbound, include func(*Client) bool) {
	raw, err := json.Marshal(out)
	if err != nil {
		h.logger.Error().Err(err).Str("event", string(out.Type)).Msg("Error marshaling event for broadcast.")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if !include(c) {
			continue
		}

		select {
		case c.send <- raw:
		default:
			h.logger.Warn().
				Str("identity", c.identity).
				Str("event", string(out.Type)).
				Msg("Client send channel full, dropping event.")
		}
	}
}
