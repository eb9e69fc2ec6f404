package cmd

import (
	"log/slog"

	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/auth"
	"shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/postgres"
	redisstore "shipping/internal/adapters/out/redis"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All handlers share
// one unit of work factory, token codec, and notifier.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	codes    *redisstore.VerificationCodeStore
	notifier *kafka.Notifier
	tokens   *auth.JWTTokenCodec
	hasher   *auth.BcryptPasswordHasher

	logger        *slog.Logger
	publicBaseURL string
}

// NewCompositionRoot builds the object graph from configuration and an open
// database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	tokens, err := auth.NewJWTTokenCodec([]byte(config.JWTSigningKey))
	if err != nil {
		return nil, err
	}

	redisClient := goredis.NewClient(&goredis.Options{Addr: config.RedisAddr})

	return &CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		codes:         redisstore.NewVerificationCodeStore(redisClient, config.VerificationCodeTTL),
		notifier:      kafka.NewNotifier(config.KafkaHost, config.KafkaNotificationsTopic),
		tokens:        tokens,
		hasher:        auth.NewBcryptPasswordHasher(config.BcryptCost),
		logger:        logger,
		publicBaseURL: config.PublicBaseURL,
	}, nil
}

// Close releases long-lived adapter resources.
func (c *CompositionRoot) Close() error {
	return c.notifier.Close()
}

func (c *CompositionRoot) CreateRegisterSellerCommandHandler() commands.RegisterSellerCommandHandler {
	var f commands.SellerUoWFactory = FuncSellerUoWFactory(func() commands.SellerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterSellerCommandHandler(
		f, c.hasher, c.tokens, c.notifier, c.logger, c.publicBaseURL,
	)
}

func (c *CompositionRoot) CreateRegisterPartnerCommandHandler() commands.RegisterPartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterPartnerCommandHandler(
		f, c.hasher, c.tokens, c.notifier, c.logger, c.publicBaseURL,
	)
}

func (c *CompositionRoot) CreateVerifyAccountCommandHandler() commands.VerifyAccountCommandHandler {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyAccountCommandHandler(f, c.tokens)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLoginCommandHandler(f, c.hasher, c.tokens)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipmentCommandHandler(
		f, c.codes, c.tokens, c.notifier, c.logger, c.publicBaseURL,
	)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelShipmentCommandHandler(f, c.codes, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAddShipmentTagCommandHandler() commands.AddShipmentTagCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddShipmentTagCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveShipmentTagCommandHandler() commands.RemoveShipmentTagCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveShipmentTagCommandHandler(f)
}

func (c *CompositionRoot) CreateSubmitReviewCommandHandler() commands.SubmitReviewCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitReviewCommandHandler(f, c.tokens)
}

func (c *CompositionRoot) CreateTrackShipmentQueryHandler() queries.TrackShipmentQueryHandler {
	return queries.NewTrackShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSellerShipmentsQueryHandler() queries.GetSellerShipmentsQueryHandler {
	return queries.NewGetSellerShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartnerShipmentsQueryHandler() queries.GetPartnerShipmentsQueryHandler {
	return queries.NewGetPartnerShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueShipmentsQueryHandler() queries.GetOverdueShipmentsQueryHandler {
	return queries.NewGetOverdueShipmentsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST API server with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateRegisterSellerCommandHandler(),
		c.CreateRegisterPartnerCommandHandler(),
		c.CreateVerifyAccountCommandHandler(),
		c.CreateLoginCommandHandler(),
		c.CreateCreateShipmentCommandHandler(),
		c.CreateUpdateShipmentCommandHandler(),
		c.CreateCancelShipmentCommandHandler(),
		c.CreateAddShipmentTagCommandHandler(),
		c.CreateRemoveShipmentTagCommandHandler(),
		c.CreateSubmitReviewCommandHandler(),
		c.CreateTrackShipmentQueryHandler(),
		c.CreateGetSellerShipmentsQueryHandler(),
		c.CreateGetPartnerShipmentsQueryHandler(),
		c.tokens,
	)
}

// CreateJobManager assembles the scheduled background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOverdueShipmentsQueryHandler(), c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncSellerUoWFactory func() commands.SellerUoW

func (f FuncSellerUoWFactory) Create() commands.SellerUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}
