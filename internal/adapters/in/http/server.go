package http

import (
	"context"
	"log/slog"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/application/usecases/queries"
)

// CommandHandler is a use case that only reports success or failure.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler is a use case or a query returning a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers is the set of use cases exposed over HTTP.
type Handlers struct {
	Authenticator ResultHandler[queries.AuthenticateQuery, queries.Principal]

	RegisterUser   CommandHandler[commands.RegisterUserCommand]
	VerifyEmail    ResultHandler[commands.VerifyEmailCommand, commands.Session]
	Login          ResultHandler[commands.LoginCommand, commands.LoginResult]
	ForgotPassword CommandHandler[commands.ForgotPasswordCommand]
	ResetPassword  ResultHandler[commands.ResetPasswordCommand, commands.Session]

	GetMe     ResultHandler[queries.GetMeQuery, queries.UserView]
	ListUsers ResultHandler[queries.ListUsersQuery, queries.Page[queries.UserView]]
	UpdateMe  ResultHandler[commands.UpdateMeCommand, *commands.Session]
	DeleteMe  CommandHandler[commands.DeleteMeCommand]

	ListShipments           ResultHandler[queries.ListShipmentsQuery, queries.Page[queries.ShipmentView]]
	GetShipment             ResultHandler[queries.GetShipmentQuery, queries.ShipmentDetails]
	CreateShipment          CommandHandler[commands.CreateShipmentCommand]
	UpdateShipment          CommandHandler[commands.UpdateShipmentCommand]
	DeleteShipment          CommandHandler[commands.DeleteShipmentCommand]
	ModerateShipment        CommandHandler[commands.ModerateShipmentCommand]
	AdvanceShipmentProgress CommandHandler[commands.AdvanceShipmentProgressCommand]
	ConfirmDelivery         CommandHandler[commands.ConfirmDeliveryCommand]

	ListTrips      ResultHandler[queries.ListTripsQuery, queries.Page[queries.TripView]]
	GetTrip        ResultHandler[queries.GetTripQuery, queries.TripDetails]
	CreateTrip     CommandHandler[commands.CreateTripCommand]
	UpdateTrip     CommandHandler[commands.UpdateTripCommand]
	DeleteTrip     CommandHandler[commands.DeleteTripCommand]
	CompleteTrip   CommandHandler[commands.CompleteTripCommand]
	CancelTrip     CommandHandler[commands.CancelTripCommand]
	PublishTrip    CommandHandler[commands.PublishTripCommand]
	AcceptShipment CommandHandler[commands.AcceptShipmentCommand]

	ReviewShipment CommandHandler[commands.ReviewShipmentCommand]
	ReviewTrip     CommandHandler[commands.ReviewTripCommand]
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h            Handlers
	secureCookie bool
	logger       *slog.Logger
}

// NewServer creates a server. secureCookie marks the session cookie Secure,
// which browsers only send back over HTTPS.
func NewServer(handlers Handlers, secureCookie bool, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		h:            handlers,
		secureCookie: secureCookie,
		logger:       logger.With("component", "http"),
	}
}
