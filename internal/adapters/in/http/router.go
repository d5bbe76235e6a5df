package http

import (
	"context"
	"log/slog"
	"net/http"

	_ "crowdship/internal/adapters/in/http/docs" // swagger document

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const defaultBodyLimit = "30M"

type RouterOptions struct {
	// UploadDir is served under UploadPrefix when set.
	UploadDir    string
	UploadPrefix string
	BodyLimit    string
}

// NewRouter wires the middleware chain and every route under /api.
func NewRouter(s *Server, metrics *Metrics, opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(s.logger)

	if opts.BodyLimit == "" {
		opts.BodyLimit = defaultBodyLimit
	}

	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogStatus:    true,
			LogURI:       true,
			LogMethod:    true,
			LogLatency:   true,
			LogRequestID: true,
			LogError:     true,
			HandleError:  true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				level := slog.LevelInfo
				if v.Error != nil {
					level = slog.LevelWarn
				}
				s.logger.LogAttrs(context.Background(), level, "request",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Duration("latency", v.Latency),
					slog.String("request_id", v.RequestID),
				)
				return nil
			},
		}),
		middleware.BodyLimit(opts.BodyLimit),
	)
	if metrics != nil {
		e.Use(metrics.Middleware)
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if opts.UploadDir != "" && opts.UploadPrefix != "" {
		e.Static(opts.UploadPrefix, opts.UploadDir)
	}

	api := e.Group("/api")
	s.registerRoutes(api)
	return e
}

func (s *Server) registerRoutes(api *echo.Group) {
	auth := api.Group("/auth")
	auth.POST("/register", s.Register)
	auth.POST("/verify-email", s.VerifyEmail)
	auth.POST("/login", s.Login)
	auth.POST("/forgot-password", s.ForgotPassword)
	auth.PATCH("/reset-password/:resetToken", s.ResetPassword)
	auth.POST("/logout", s.Logout)

	users := api.Group("/users", s.authenticate)
	users.GET("/get-all", s.ListUsers, requireStaff)
	users.GET("/get-me", s.GetMe)
	users.PATCH("/update-me", s.UpdateMe)
	users.DELETE("/delete-me", s.DeleteMe)

	shipments := api.Group("/shipments")
	shipments.GET("/all", s.ListShipments)
	shipments.GET("/:id", s.GetShipment)
	shipments.POST("/new", s.CreateShipment, s.authenticate)
	shipments.PATCH("/:id", s.UpdateShipment, s.authenticate)
	shipments.DELETE("/:id", s.DeleteShipment, s.authenticate)

	trips := api.Group("/trips")
	trips.GET("/all", s.ListTrips)
	trips.GET("/:id", s.GetTrip)

	shopper := api.Group("/shopper", s.authenticate)
	shopper.GET("/get-my-shipments", s.ListMyShipments)
	shopper.POST("/create-shipment", s.CreateShipment)
	shopper.PATCH("/update-shipment/:id", s.UpdateShipment)
	shopper.DELETE("/delete-shipment/:id", s.DeleteShipment)
	shopper.POST("/review-trip/:travelerId", s.ReviewTrip)
	shopper.PATCH("/confirm-delivery/:id", s.ConfirmDelivery)

	traveler := api.Group("/traveler", s.authenticate)
	traveler.GET("/get-my-trips", s.ListMyTrips)
	traveler.POST("/accept-shipment/:shipmentId/:tripId", s.AcceptShipment)
	traveler.POST("/create-trip", s.CreateTrip)
	traveler.PATCH("/update-trip/:id", s.UpdateTrip)
	traveler.DELETE("/delete-trip/:id", s.DeleteTrip)
	traveler.PATCH("/complete-trip/:id", s.CompleteTrip)
	traveler.PATCH("/cancel-trip/:id", s.CancelTrip)
	traveler.PATCH("/shipment-progress/:id", s.AdvanceShipmentProgress)
	traveler.POST("/review-shipment/:shopperId", s.ReviewShipment)

	admin := api.Group("/admin", s.authenticate, requireStaff)
	admin.PATCH("/shipments/:id/moderate", s.ModerateShipment)
	admin.PATCH("/trips/:id/publish", s.PublishTrip)
}
