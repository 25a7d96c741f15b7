package cache

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/middleware"
)

// NewRouter constructs the HTTP handler in front of the cache controller.
//
// Routes:
//
//	POST /api/update  → force-update command (JSON body, recognized type tag)
//	*                 → fetch interception (cache-first asset serving)
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) — logs incoming requests
//  2. AllowContentType("application/json") — control API only
func NewRouter(c *Controller, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Control API: explicit commands, never triggered by plain navigation.
	r.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))
		r.Post("/update", handleUpdate(c))
	})

	// Everything else is a resource request for the application itself.
	r.Handle("/*", c)

	return r
}

// handleUpdate decodes a control message and hands it to the controller.
// Only the force-update tag is recognized; anything else is a bad request.
func handleUpdate(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			http.Error(w, "invalid message", http.StatusBadRequest)
			return
		}
		if msg.Type != MsgForceUpdate {
			http.Error(w, "unrecognized message type", http.StatusBadRequest)
			return
		}
		c.HandleMessage(msg)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Message{Type: MsgCacheCleared})
	}
}
