package jobs

import (
	"context"
	"log/slog"

	"fleet/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotificationExpiryJob sweeps pending notifications whose response window
// has elapsed and settles them as expired.
type NotificationExpiryJob struct {
	handler commands.ExpireNotificationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationExpiryJob creates the scheduled expiry sweep.
func NewNotificationExpiryJob(handler commands.ExpireNotificationsCommandHandler, logger *slog.Logger) *NotificationExpiryJob {
	return &NotificationExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "notification_expiry_job"),
	}
}

// Start begins the expiry sweep to run every second.
func (j *NotificationExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewExpireNotificationsCommand()

		settled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification expiry job failed", "error", err)
			return
		}

		if settled > 0 {
			j.logger.InfoContext(ctx, "Expired pending notifications", "count", settled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification expiry job started (running every second)")
	return nil
}

// Stop stops the expiry sweep.
func (j *NotificationExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification expiry job stopped")
}
