package cityclassifieds

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/auth/register"
	listingcreate "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/listing/create"
	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/listing/like"
	listinglist "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/listing/list"
	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/listing/owned"
	listingread "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/listing/read"
	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/listing/remove"
	listingupdate "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/listing/update"
	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/logo"
	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/message/conversations"
	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/message/send"
	newscreate "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/news/create"
	newslist "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/news/list"
	notificationlist "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/notification/list"
	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/notification/markread"
	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/notification/stream"
	paymentcreate "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/payment/create"
	paymentlist "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/payment/list"
	profileread "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/profile/read"
	profileupdate "github.com/magabrotheeeer/city-classifieds/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/city-classifieds/internal/http/handlers/profile/uploadlogo"
	"github.com/magabrotheeeer/city-classifieds/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/city-classifieds/internal/services/auth"
	listingservice "github.com/magabrotheeeer/city-classifieds/internal/services/listing"
	messageservice "github.com/magabrotheeeer/city-classifieds/internal/services/message"
	newsservice "github.com/magabrotheeeer/city-classifieds/internal/services/news"
	notificationservice "github.com/magabrotheeeer/city-classifieds/internal/services/notification"
	paymentservice "github.com/magabrotheeeer/city-classifieds/internal/services/payment"
	profileservice "github.com/magabrotheeeer/city-classifieds/internal/services/profile"
)

// Services bundles the business-logic layer for route registration.
type Services struct {
	Auth          *authservice.Service
	Listings      *listingservice.Service
	Messages      *messageservice.Service
	News          *newsservice.Service
	Notifications *notificationservice.Service
	Payments      *paymentservice.Service
	Profiles      *profileservice.Service
}

// RegisterRoutes mounts every endpoint of the API.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Open endpoints
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/news", newslist.New(logger, s.News).ServeHTTP)

		// Public feed; a valid token only adds per-viewer like state
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(s.Auth, logger))
			r.Get("/listings", listinglist.New(logger, s.Listings).ServeHTTP)
			r.Get("/listings/{id}", listingread.New(logger, s.Listings).ServeHTTP)
		})

		// Endpoints requiring a session
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.BusinessOnlyMiddleware(logger))
				r.Post("/listings", listingcreate.New(logger, s.Listings).ServeHTTP)
			})
			r.Put("/listings/{id}", listingupdate.New(logger, s.Listings).ServeHTTP)
			r.Delete("/listings/{id}", remove.New(logger, s.Listings).ServeHTTP)
			r.Post("/listings/{id}/like", like.New(logger, s.Listings).ServeHTTP)
			r.Get("/listings/mine", owned.New(logger, s.Listings).ServeHTTP)

			r.Post("/messages", send.New(logger, s.Messages).ServeHTTP)
			r.Get("/messages/conversations", conversations.New(logger, s.Messages).ServeHTTP)

			r.Get("/notifications", notificationlist.New(logger, s.Notifications).ServeHTTP)
			r.Post("/notifications/{id}/read", markread.New(logger, s.Notifications).ServeHTTP)
			r.Get("/notifications/stream", stream.New(logger, s.Notifications).ServeHTTP)

			r.Post("/news", newscreate.New(logger, s.News).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, s.Payments).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, s.Payments).ServeHTTP)

			r.Get("/profile", profileread.New(logger, s.Profiles).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, s.Profiles).ServeHTTP)
			r.Post("/profile/logo", uploadlogo.New(logger, s.Profiles).ServeHTTP)
		})
	})

	r.Get("/logos/{id}", logo.New(logger, s.Profiles).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
}
