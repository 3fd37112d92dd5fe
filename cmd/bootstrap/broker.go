package bootstrap

import (
	"context"

	"furnish-admin/internal/infra/events"
	"furnish-admin/internal/infra/writestore"
	"furnish-admin/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewPublisher,
		NewRelay,
	),
	fx.Invoke(StartRelay),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (*events.Publisher, error) {
	publisher, err := events.NewPublisher(cfg.Broker)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

func NewRelay(outbox *writestore.OutboxStore, publisher *events.Publisher, pool *pgxpool.Pool, cfg config.Config) *events.Relay {
	return events.NewRelay(outbox, publisher, pool, cfg.Broker)
}

func StartRelay(lc fx.Lifecycle, relay *events.Relay) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			relay.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			relay.Stop()
			return nil
		},
	})
}
