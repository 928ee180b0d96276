// Package register implements the HTTP handler for account registration.
//
// It decodes and validates the registration form, delegates account
// creation to the auth service and returns the new account's uid.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/city-classifieds/internal/http/response"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
)

// Request is the registration form. Business accounts must send a NIP.
type Request struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"user_type" validate:"required,oneof=mieszkaniec przedsiebiorca"`
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	NIP      *string `json:"nip,omitempty" validate:"omitempty,numeric,len=10"`
}

// Handler handles registration requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the registration part of the auth business logic.
type Service interface {
	Register(ctx context.Context, email, rawPassword, role, fullName string, nip *string) (string, error)
}

// New creates a register Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Register a new account
// @Description Creates a resident or business account. The role is fixed at registration.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Registration form"
// @Success 200 {object} map[string]any "Account created"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 422 {object} response.ErrorResponse "Validation failed"
// @Failure 500 {object} response.ErrorResponse "Registration failed"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
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

	uid, err := h.service.Register(r.Context(), req.Email, req.Password, req.Role, req.FullName, req.NIP)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register user"))
		return
	}

	log.Info("registered new user", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_id": uid,
	}))
}
