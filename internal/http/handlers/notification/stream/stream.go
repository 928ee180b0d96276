// Package stream implements the server-sent events endpoint pushing
// fresh notifications to the browser. The client re-subscribes after a
// dropped connection; the server keeps no reconnect state.
package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/city-classifieds/internal/http/middlewarectx"
	"github.com/magabrotheeeer/city-classifieds/internal/http/response"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/services/notification"
)

// keepAliveInterval is how often an SSE comment is written to detect
// dead connections behind proxies.
const keepAliveInterval = 30 * time.Second

// Handler handles live notification streams.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the subscription part of the notification business logic.
type Service interface {
	Subscribe(userUID string) *notification.Subscription
	Unsubscribe(sub *notification.Subscription)
}

// New creates a stream Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP upgrades the request to an SSE stream and forwards the
// user's notifications as they are created, until the client leaves.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.stream"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("response writer does not support flushing")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.service.Subscribe(userUID)
	defer h.service.Unsubscribe(sub)
	log.Info("stream opened", slog.String("user_uid", userUID))

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Info("stream closed", slog.String("user_uid", userUID))
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case n, ok := <-sub.C():
			if !ok {
				return
			}
			payload, err := json.Marshal(n)
			if err != nil {
				log.Error("failed to marshal notification", sl.Err(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
