// Package uploadlogo implements the HTTP handler receiving a company
// logo as multipart form data and storing it in the blob store.
package uploadlogo

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/city-classifieds/internal/http/middlewarectx"
	"github.com/magabrotheeeer/city-classifieds/internal/http/response"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
)

// maxLogoSize caps the multipart form at 5 MiB.
const maxLogoSize = 5 << 20

// Handler handles logo upload requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the logo part of the profile business logic.
type Service interface {
	UploadLogo(ctx context.Context, userUID, filename string, r io.Reader) (string, error)
}

// New creates an uploadlogo Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP stores the "logo" form file and returns its public URL.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.uploadlogo"
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

	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		log.Error("logo file missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("logo file missing"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	logoURL, err := h.service.UploadLogo(r.Context(), userUID, header.Filename, file)
	if err != nil {
		log.Error("failed to upload logo", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not upload logo"))
		return
	}

	log.Info("success to upload logo", slog.String("logo_url", logoURL))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"logo_url": logoURL,
	}))
}
