// Package logo implements the public HTTP handler serving stored logo
// images back by their blob id.
package logo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/city-classifieds/internal/http/response"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
)

// Handler handles logo download requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the logo download part of the profile business logic.
type Service interface {
	DownloadLogo(ctx context.Context, fileID string) ([]byte, error)
}

// New creates a logo Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP streams the stored image named in the URL.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.logo"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	fileID := chi.URLParam(r, "id")
	if fileID == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing file id"))
		return
	}

	data, err := h.service.DownloadLogo(r.Context(), fileID)
	if err != nil {
		log.Error("failed to download logo", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("logo not found"))
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		log.Error("failed to write logo", sl.Err(err))
	}
}
