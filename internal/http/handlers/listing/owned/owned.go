// Package owned implements the HTTP handler listing the current
// account's own listings, regardless of status.
package owned

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

// Handler handles dashboard requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the dashboard part of the listing business logic.
type Service interface {
	ListByOwner(ctx context.Context, ownerUID string) ([]*models.Listing, error)
}

// New creates an owned Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP returns every listing owned by the caller.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.owned"
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

	res, err := h.service.ListByOwner(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list own listings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list own listings"))
		return
	}

	log.Info("success to list own listings", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"listings": res,
		"count":    len(res),
	}))
}
