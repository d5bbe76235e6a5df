package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "crowdship/internal/adapters/in/http"
	"crowdship/internal/adapters/out/crypto"
	"crowdship/internal/adapters/out/kafka"
	"crowdship/internal/adapters/out/mailer"
	"crowdship/internal/adapters/out/postgres"
	"crowdship/internal/adapters/out/storage"
	"crowdship/internal/adapters/out/token"
	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/application/usecases/queries"
	"crowdship/internal/core/ports"
	"crowdship/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  *kafka.EventPublisher

	hasher  crypto.BcryptHasher
	tokens  *token.JWTIssuer
	mailer  *mailer.LogMailer
	storage *storage.LocalPhotoStorage
	metrics *httpin.Metrics
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	hasher, err := crypto.NewBcryptHasher(crypto.DefaultCost)
	if err != nil {
		return nil, err
	}
	tokens, err := token.NewJWTIssuer(configs.JWTSecret, configs.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("jwt issuer: %w", err)
	}
	photos, err := storage.NewLocalPhotoStorage(configs.UploadDir, configs.UploadBaseURL)
	if err != nil {
		return nil, fmt.Errorf("photo storage: %w", err)
	}

	root := &CompositionRoot{
		configs: configs,
		gormDB:  gormDB,
		logger:  logger,
		hasher:  hasher,
		tokens:  tokens,
		mailer:  mailer.NewLogMailer(configs.MailFrom, logger),
		storage: photos,
		metrics: httpin.NewMetrics(),
	}

	var publisher ports.EventPublisher
	if configs.KafkaHost != "" {
		root.publisher, err = kafka.NewEventPublisher(
			configs.KafkaHost, configs.KafkaShipmentChangedTopic, configs.KafkaTripChangedTopic, logger,
		)
		if err != nil {
			return nil, fmt.Errorf("kafka publisher: %w", err)
		}
		publisher = root.publisher
	}
	root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)
	return root, nil
}

// Close releases the connections owned by the root.
func (c *CompositionRoot) Close() error {
	var errList []error
	if c.publisher != nil {
		errList = append(errList, c.publisher.Close())
	}
	if sqlDB, err := c.gormDB.DB(); err == nil {
		errList = append(errList, sqlDB.Close())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) tripUoWFactory() commands.TripUoWFactory {
	return FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAuthenticateQueryHandler() (queries.AuthenticateQueryHandler, error) {
	return queries.NewAuthenticateQueryHandler(c.gormDB, c.tokens)
}

func (c *CompositionRoot) CreateExpireShipmentsCommandHandler() commands.ExpireShipmentsCommandHandler {
	return commands.NewExpireShipmentsCommandHandler(c.shipmentUoWFactory(), nil)
}

// CreateHTTPHandlers builds every use case exposed by the HTTP adapter.
func (c *CompositionRoot) CreateHTTPHandlers() (httpin.Handlers, error) {
	authenticator, err := c.CreateAuthenticateQueryHandler()
	if err != nil {
		return httpin.Handlers{}, err
	}

	users := c.userUoWFactory()
	shipments := c.shipmentUoWFactory()
	trips := c.tripUoWFactory()
	all := c.fullUoWFactory()

	return httpin.Handlers{
		Authenticator: authenticator,

		RegisterUser: commands.NewRegisterUserCommandHandler(
			users, c.hasher, c.mailer, c.storage, c.configs.DefaultUserPhoto, nil,
		),
		VerifyEmail: commands.NewVerifyEmailCommandHandler(users, c.tokens, nil),
		Login:       commands.NewLoginCommandHandler(users, c.hasher, c.tokens, c.mailer, nil),
		ForgotPassword: commands.NewForgotPasswordCommandHandler(
			users, c.mailer, c.configs.PasswordResetURLBase(), nil,
		),
		ResetPassword: commands.NewResetPasswordCommandHandler(users, c.hasher, c.tokens, nil),

		GetMe:     queries.NewGetMeQueryHandler(c.gormDB),
		ListUsers: queries.NewListUsersQueryHandler(c.gormDB),
		UpdateMe:  commands.NewUpdateMeCommandHandler(users, c.hasher, c.tokens, c.storage, nil),
		DeleteMe:  commands.NewDeleteMeCommandHandler(users),

		ListShipments:           queries.NewListShipmentsQueryHandler(c.gormDB, nil),
		GetShipment:             queries.NewGetShipmentQueryHandler(c.gormDB),
		CreateShipment:          commands.NewCreateShipmentCommandHandler(shipments, c.storage, nil),
		UpdateShipment:          commands.NewUpdateShipmentCommandHandler(shipments, c.storage, nil),
		DeleteShipment:          commands.NewDeleteShipmentCommandHandler(shipments, c.storage),
		ModerateShipment:        commands.NewModerateShipmentCommandHandler(shipments),
		AdvanceShipmentProgress: commands.NewAdvanceShipmentProgressCommandHandler(shipments),
		ConfirmDelivery:         commands.NewConfirmDeliveryCommandHandler(all),

		ListTrips:      queries.NewListTripsQueryHandler(c.gormDB, nil),
		GetTrip:        queries.NewGetTripQueryHandler(c.gormDB),
		CreateTrip:     commands.NewCreateTripCommandHandler(trips, nil),
		UpdateTrip:     commands.NewUpdateTripCommandHandler(trips, nil),
		DeleteTrip:     commands.NewDeleteTripCommandHandler(trips),
		CompleteTrip:   commands.NewCompleteTripCommandHandler(trips),
		CancelTrip:     commands.NewCancelTripCommandHandler(trips),
		PublishTrip:    commands.NewPublishTripCommandHandler(trips),
		AcceptShipment: commands.NewAcceptShipmentCommandHandler(all),

		ReviewShipment: commands.NewReviewShipmentCommandHandler(all, nil),
		ReviewTrip:     commands.NewReviewTripCommandHandler(all, nil),
	}, nil
}

// CreateRouter returns the echo instance serving the whole API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	handlers, err := c.CreateHTTPHandlers()
	if err != nil {
		return nil, err
	}
	server := httpin.NewServer(handlers, c.configs.IsProduction(), c.logger)
	return httpin.NewRouter(server, c.metrics, httpin.RouterOptions{
		UploadDir:    c.storage.Dir(),
		UploadPrefix: "/uploads",
	}), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireShipmentsCommandHandler(), c.configs.ExpiryJobSchedule, c.logger)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
