/*
Package handler provides the HTTP handlers and routing setup for the hub.

This file defines the main Router, applying logging, CORS, and IP-based rate
limiting before delegating to the token and websocket handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"kchat/internal/pkg/limiter"
	"kchat/internal/pkg/logx"
	"kchat/internal/pkg/resp"
)

const (
	// TokenRate limits admin-password exchanges per IP.
	TokenRate  = 0.1
	TokenBurst = 3

	// ConnectRate limits websocket upgrades per IP.
	ConnectRate  = 0.5
	ConnectBurst = 5
)

// Router sets up the HTTP routing table for the application: health check,
// admin token mint, and the websocket upgrade endpoint.
func Router(deps *AppDeps) http.Handler {
	tokenLimiter := limiter.NewIPRateLimiter(rate.Limit(TokenRate), TokenBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "KChat Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		rateLimitedToken := tokenLimiter.Middleware(HandleAdminToken(deps))
		api.Post("/auth/token", http.HandlerFunc(rateLimitedToken.ServeHTTP))
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	return r
}
