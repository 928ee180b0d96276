// Package list implements the HTTP handler feeding the notification
// bell: the latest notifications plus the unread count.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/city-classifieds/internal/http/middlewarectx"
	"github.com/magabrotheeeer/city-classifieds/internal/http/response"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// Handler handles bell requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the listing part of the notification business logic.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Notification, int, error)
}

// New creates a list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP returns the latest notifications and the unread counter.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.list"
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

	items, unread, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list notifications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list notifications"))
		return
	}

	log.Info("success to list notifications", slog.Int("unread", unread))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"notifications": items,
		"unread_count":  unread,
	}))
}
