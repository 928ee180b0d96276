// Package create implements the HTTP handler starting a simulated
// payment for promoting a listing.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/city-classifieds/internal/http/middlewarectx"
	"github.com/magabrotheeeer/city-classifieds/internal/http/response"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
	"github.com/magabrotheeeer/city-classifieds/internal/services/payment"
)

// Handler handles payment creation requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the checkout part of the payment business logic.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyPayment) (*models.Payment, error)
}

// New creates a create Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Start a payment
// @Description Creates a pending payment for a listing; it settles after a short delay and credits MSK tokens.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyPayment true "Payment form"
// @Success 200 {object} map[string]any "Pending payment"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or missing method fields"
// @Failure 401 {object} response.ErrorResponse "Not signed in"
// @Failure 422 {object} response.ErrorResponse "Validation failed"
// @Router /payments [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrMissingCardFields),
			errors.Is(err, payment.ErrMissingBlikCode),
			errors.Is(err, payment.ErrListingNotPayable):
			log.Warn("payment rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		default:
			log.Error("failed to create payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create payment"))
			return
		}
	}

	log.Info("success to create payment", slog.String("id", res.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payment": res,
	}))
}
