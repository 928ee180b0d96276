// Package login implements the HTTP handler for signing in.
//
// It decodes the credentials, delegates verification to the auth service
// and returns the session token together with the account's role.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/city-classifieds/internal/http/response"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/services/auth"
)

// Request is the login form.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Handler handles login requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the login part of the auth business logic.
type Service interface {
	Login(ctx context.Context, email, rawPassword string) (token, role, userUID string, err error)
}

// New creates a login Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Sign in
// @Description Verifies the credentials and returns a session token.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Credentials"
// @Success 200 {object} map[string]any "Signed in"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 401 {object} response.ErrorResponse "Wrong credentials"
// @Failure 422 {object} response.ErrorResponse "Validation failed"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, role, userUID, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("wrong credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sign in"))
		return
	}

	log.Info("login success", slog.String("email", req.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":     token,
		"user_type": role,
		"user_id":   userUID,
	}))
}
