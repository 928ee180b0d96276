// Package like implements the HTTP handler for toggling a like. The
// reply always carries the server-side truth of the like state and the
// fresh counter.
package like

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

// Handler handles like toggle requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the like part of the listing business logic.
type Service interface {
	ToggleLike(ctx context.Context, userUID, listingID string) (*models.LikeResult, error)
}

// New creates a like Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Toggle a like
// @Description Likes the listing when unliked and removes the like otherwise.
// @Tags Listings
// @Produce  json
// @Param id path string true "Listing id"
// @Success 200 {object} map[string]any "Resulting like state and counter"
// @Failure 400 {object} response.ErrorResponse "Malformed id"
// @Failure 401 {object} response.ErrorResponse "Not signed in"
// @Failure 500 {object} response.ErrorResponse "Toggle failed"
// @Router /listings/{id}/like [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.like"
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

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.ToggleLike(r.Context(), userUID, id)
	if err != nil {
		log.Error("failed to toggle like", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not toggle like"))
		return
	}

	log.Info("success to toggle like",
		slog.String("id", id), slog.Bool("liked", result.Liked))
	render.JSON(w, r, response.StatusOKWithData(result))
}
