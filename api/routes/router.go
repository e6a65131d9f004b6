package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coauto/coauto-backend/api/controllers"
	"github.com/coauto/coauto-backend/api/middleware"
	authsvc "github.com/coauto/coauto-backend/internal/auth"
	catalogsvc "github.com/coauto/coauto-backend/internal/catalog"
	"github.com/coauto/coauto-backend/internal/lookups"
	ratingsvc "github.com/coauto/coauto-backend/internal/ratings"
	usersvc "github.com/coauto/coauto-backend/internal/users"
	"github.com/coauto/coauto-backend/pkg/config"
	"github.com/coauto/coauto-backend/pkg/db"
	"github.com/coauto/coauto-backend/pkg/identity"
	"github.com/coauto/coauto-backend/pkg/logger"
	"github.com/coauto/coauto-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	verifier *identity.Client,
	httpMetrics *middleware.HTTPMetrics,
	metricsHandler http.Handler,
	lookupsRepo *lookups.Repository,
	vehicleService catalogsvc.Service,
	ratingService ratingsvc.Service,
	userService usersvc.Service,
	authService authsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		httpMetrics.Middleware(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, redisClient, logg)).Post("/sign-up", controllers.SignUp(authService, logg))
		r.Post("/confirm", controllers.ConfirmSignUp(authService, logg))
		r.Post("/resend-code", controllers.ResendConfirmationCode(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(authService, logg))
		r.Post("/forgot-password", controllers.ForgotPassword(authService, logg))
		r.Post("/confirm-forgot-password", controllers.ConfirmForgotPassword(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(verifier, logg))
			r.Get("/me", controllers.Me(authService, logg))
			r.Post("/change-password", controllers.ChangePassword(authService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/autos", func(r chi.Router) {
			r.Get("/", controllers.ListVehicles(vehicleService, logg))
			r.Get("/search", controllers.SearchVehicles(vehicleService, logg))
			r.Get("/{id}", controllers.GetVehicle(vehicleService, logg))
			r.Get("/{id}/rates", controllers.ListVehicleRatings(ratingService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(verifier, logg))
				r.Post("/", controllers.CreateVehicle(vehicleService, logg))
				r.Put("/{id}", controllers.UpdateVehicle(vehicleService, logg))
				r.Delete("/{id}", controllers.DeleteVehicle(vehicleService, logg))
			})
		})

		r.Route("/rates", func(r chi.Router) {
			r.Use(middleware.Auth(verifier, logg))
			r.Post("/", controllers.CreateRating(ratingService, logg))
			r.Put("/{id}", controllers.UpdateRating(ratingService, logg))
			r.Delete("/{id}", controllers.DeleteRating(ratingService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Auth(verifier, logg))
			r.Get("/", controllers.ListUsers(userService, logg))
			r.Get("/{id}", controllers.GetUser(userService, logg))
			r.Put("/{id}", controllers.UpdateUserProfile(userService, logg))
			r.Delete("/{id}", controllers.DeleteUser(userService, logg))
		})

		r.Get("/statuses", controllers.ListStatuses(lookupsRepo, logg))
		r.Get("/roles", controllers.ListRoles(lookupsRepo, logg))
	})

	return r
}
