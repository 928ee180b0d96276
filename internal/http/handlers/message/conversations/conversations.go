// Package conversations implements the HTTP handler returning the
// current user's message threads grouped by counterpart.
package conversations

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

// Handler handles conversation listing requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the listing part of the messaging business logic.
type Service interface {
	ListConversations(ctx context.Context, userUID string) ([]*models.Conversation, error)
}

// New creates a conversations Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP returns one conversation per counterpart, newest thread
// first.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.conversations"
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

	res, err := h.service.ListConversations(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list conversations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list conversations"))
		return
	}

	log.Info("success to list conversations", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"conversations": res,
		"count":         len(res),
	}))
}
