package router

import (
	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"herohome/internal/config"
	"herohome/internal/handler"
	"herohome/internal/logger"
	"herohome/internal/metrics"
	"herohome/internal/model"
	"herohome/internal/service"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Users    *handler.UserHandler
	Auth     *handler.AuthHandler
	Services *handler.ServiceHandler
	Bookings *handler.BookingHandler
	Reviews  *handler.ReviewHandler
	Stats    *handler.StatsHandler
}

// Register wires routes and middleware. users resolves caller roles for the
// admin-only routes.
func Register(e *echo.Echo, cfg *config.Config, log zerolog.Logger, h Handlers, users service.UserService) {
	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(metrics.Middleware())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/login", h.Auth.Login)
	e.POST("/auth/refresh", h.Auth.Refresh)

	e.POST("/users", h.Users.Register)
	e.GET("/users/role/:email", h.Users.GetRole)

	e.GET("/services", h.Services.List)
	e.GET("/services/:id", h.Services.Get)
	e.GET("/latest-services", h.Services.Latest)
	e.POST("/services", h.Services.Create)
	e.GET("/services/user/:email", h.Services.ListByProvider)
	e.PATCH("/services/:id", h.Services.Update)
	e.DELETE("/services/:id", h.Services.Delete)

	e.GET("/bookings", h.Bookings.List)
	e.POST("/bookings", h.Bookings.Create)
	e.DELETE("/bookings/:id", h.Bookings.Delete)

	e.POST("/services/:serviceId/review", h.Reviews.AddReview)

	e.GET("/provider-stats/:email", h.Stats.Provider)
	e.GET("/user-stats/:email", h.Stats.User)

	// Secured routes (require JWT authentication)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: h.Auth.ParseToken,
		ContextKey:     handler.ClaimsContextKey,
		TokenLookup:    "header:" + echo.HeaderAuthorization + ":Bearer ",
	}))

	secured.GET("/me", h.Auth.Me)
	secured.POST("/auth/logout", h.Auth.Logout)

	// Admin routes
	admin := secured.Group("", handler.RequireRole(users, model.RoleAdmin))
	admin.GET("/all-users", h.Users.ListUsers)
	admin.PATCH("/users/admin/:id", h.Users.SetRole)
	admin.GET("/admin-stats", h.Stats.Admin)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
