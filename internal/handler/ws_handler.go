/*
Package handler provides the HTTP handlers and routing setup for the hub.

This file contains the websocket upgrade handler: per-IP connection
limiting, identity and credential extraction from cookies, and the start of
the client session lifecycle.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"kchat/internal/app/hub"
	"kchat/internal/pkg/errs"
	"kchat/internal/pkg/limiter"
	"kchat/internal/pkg/logx"
	"kchat/internal/pkg/resp"
)

// Cookie names carrying connection metadata.
const (
	// IdentityCookie holds the self-declared session key used for room
	// scoping and rate-limit bucketing. Absence is allowed; such
	// connections share the empty-identity bucket.
	IdentityCookie = "id"

	// AuthCookie holds the signed admin credential, when present.
	AuthCookie = "auth"
)

// HandleWebSocket creates the HandlerFunc that upgrades a connection and
// attaches it to the hub. Credential verification happens inside
// hub.Register and never blocks or fails the upgrade: an invalid token
// silently yields an anonymous session.
func HandleWebSocket(upgrader websocket.Upgrader, connectLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !connectLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		identity := cookieValue(r, IdentityCookie)
		authToken := cookieValue(r, AuthCookie)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := hub.NewClient(deps.Hub, conn, identity, authToken)

		deps.Hub.Register(client)

		go client.WritePump()

		client.ReadPump()
	}
}

// cookieValue returns the named cookie's value, or empty when absent.
func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
