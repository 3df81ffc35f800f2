package cmd

import (
	"log/slog"
	"os"
	"time"

	"fleet/internal/adapters/in/http"
	"fleet/internal/adapters/out/notify"
	"fleet/internal/adapters/out/postgres"
	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/ports"
	"fleet/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	base := notify.NewLogNotifier(logger)
	notifier := notify.NewRetryingNotifier(base, logger, notify.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    time.Second,
	})

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateTripCommandHandler() commands.CreateTripCommandHandler {
	return commands.NewCreateTripCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateOfferTripCommandHandler() commands.OfferTripCommandHandler {
	return commands.NewOfferTripCommandHandler(c.createUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateResolveNotificationCommandHandler() commands.ResolveNotificationCommandHandler {
	return commands.NewResolveNotificationCommandHandler(c.createUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.createNotificationUoWFactory())
}

func (c *CompositionRoot) CreateReassignDriverCommandHandler() commands.ReassignDriverCommandHandler {
	return commands.NewReassignDriverCommandHandler(c.createUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReassignTripCommandHandler() commands.ReassignTripCommandHandler {
	return commands.NewReassignTripCommandHandler(c.createUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateStartJourneyCommandHandler() commands.StartJourneyCommandHandler {
	return commands.NewStartJourneyCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateUpdateTripStatusCommandHandler() commands.UpdateTripStatusCommandHandler {
	return commands.NewUpdateTripStatusCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateExpireNotificationsCommandHandler() commands.ExpireNotificationsCommandHandler {
	return commands.NewExpireNotificationsCommandHandler(c.createNotificationUoWFactory())
}

func (c *CompositionRoot) CreateGetActiveNotificationsQueryHandler() queries.GetActiveNotificationsQueryHandler {
	return queries.NewGetActiveNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTripQueryHandler() queries.GetTripQueryHandler {
	return queries.NewGetTripQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateTripCommandHandler(),
		c.CreateOfferTripCommandHandler(),
		c.CreateResolveNotificationCommandHandler(),
		c.CreateMarkNotificationReadCommandHandler(),
		c.CreateReassignDriverCommandHandler(),
		c.CreateReassignTripCommandHandler(),
		c.CreateStartJourneyCommandHandler(),
		c.CreateUpdateDeliveryStatusCommandHandler(),
		c.CreateUpdateTripStatusCommandHandler(),
		c.CreateGetActiveNotificationsQueryHandler(),
		c.CreateGetTripQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireNotificationsCommandHandler(), c.logger)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createNotificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
