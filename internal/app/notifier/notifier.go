// Package notifier assembles the e-mail delivery process: it consumes
// notification events from the broker and hands them to the sender.
package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/city-classifieds/internal/config"
	smtplib "github.com/magabrotheeeer/city-classifieds/internal/lib/smtp"
	"github.com/magabrotheeeer/city-classifieds/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/city-classifieds/internal/services/sender"
)

// App is the assembled notifier process.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New connects to the broker and prepares the SMTP transport.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitURL, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.DeliveryQueues)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtplib.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run starts one consumer per notification queue and blocks until the
// context is cancelled.
func (a *App) Run(ctx context.Context) error {
	for _, q := range rabbitmq.DeliveryQueues {
		if err := rabbitmq.ConsumeMessages(ctx, a.ch, q.QueueName, a.senderService.SendNotificationEmail); err != nil {
			a.logger.Error("failed to start consumer",
				slog.String("queue", q.QueueName), slog.Any("err", err))
			return err
		}
	}

	<-ctx.Done()
	a.logger.Info("notifier shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
