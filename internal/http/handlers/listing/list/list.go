// Package list implements the HTTP handler for the public listings feed
// with search, category and price filters and a sort order.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/city-classifieds/internal/http/middlewarectx"
	"github.com/magabrotheeeer/city-classifieds/internal/http/response"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// Handler handles feed requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the feed part of the listing business logic.
type Service interface {
	List(ctx context.Context, f models.ListingFilter, viewerUID string) ([]*models.Listing, error)
}

// New creates a list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List active listings
// @Description Returns the active listings matching the query filters.
// @Tags Listings
// @Produce  json
// @Param search query string false "Full-text search over title and description"
// @Param category query string false "Listing category"
// @Param min_price query number false "Lower price bound"
// @Param max_price query number false "Upper price bound"
// @Param sort query string false "newest, oldest, price_asc, price_desc or most_liked"
// @Param limit query int false "Page size, default 20, max 100"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]any "Matching listings"
// @Failure 400 {object} response.ErrorResponse "Bad filter values"
// @Failure 500 {object} response.ErrorResponse "Query failed"
// @Router /listings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := parseFilter(r)
	if err != nil {
		log.Error("failed to parse filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	viewerUID, _ := r.Context().Value(middlewarectx.UserUID).(string)

	res, err := h.service.List(r.Context(), *filter, viewerUID)
	if err != nil {
		log.Error("failed to list listings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list listings"))
		return
	}

	log.Info("success to list listings", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"listings": res,
		"count":    len(res),
	}))
}

func parseFilter(r *http.Request) (*models.ListingFilter, error) {
	q := r.URL.Query()
	f := &models.ListingFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	}

	if f.Category != "" && !models.IsListingCategory(f.Category) {
		return nil, errUnknownCategory
	}
	if f.Sort != "" && !models.IsSortOrder(f.Sort) {
		return nil, errUnknownSort
	}

	if v := q.Get("min_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errBadPrice
		}
		f.MinPrice = &p
	}
	if v := q.Get("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errBadPrice
		}
		f.MaxPrice = &p
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errBadPage
		}
		f.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errBadPage
		}
		f.Offset = n
	}
	return f, nil
}

var (
	errUnknownCategory = errors.New("unknown category")
	errUnknownSort     = errors.New("unknown sort order")
	errBadPrice        = errors.New("price bounds must be numbers")
	errBadPage         = errors.New("limit and offset must be integers")
)
