// Package read implements the HTTP handler for fetching one listing.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/city-classifieds/internal/http/middlewarectx"
	"github.com/magabrotheeeer/city-classifieds/internal/http/response"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// Handler handles requests for a single listing.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the read part of the listing business logic.
type Service interface {
	Read(ctx context.Context, id, viewerUID string) (*models.Listing, error)
}

// New creates a read Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP fetches the listing named in the URL. Anonymous viewers get
// the listing without like state.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	viewerUID, _ := r.Context().Value(middlewarectx.UserUID).(string)

	res, err := h.service.Read(r.Context(), id, viewerUID)
	if err != nil {
		log.Error("failed to read listing", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read listing"))
		return
	}

	log.Info("success to read listing", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"listing": res,
	}))
}
