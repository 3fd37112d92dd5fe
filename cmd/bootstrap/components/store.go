package components

import (
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/infra/readstore"
	"furnish-admin/internal/infra/uow"
	"furnish-admin/internal/infra/writestore"
	"furnish-admin/internal/usecase/commands"
	"furnish-admin/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,

		fx.Annotate(
			writestore.NewBookingStore,
			fx.As(new(commands.BookingStore)),
		),
		fx.Annotate(
			writestore.NewPaymentStore,
			fx.As(new(commands.PaymentStore)),
		),
		fx.Annotate(
			writestore.NewOrderStore,
			fx.As(new(commands.OrderStore)),
		),
		writestore.NewOutboxStore,
		fx.Annotate(
			func(s *writestore.OutboxStore) *writestore.OutboxStore { return s },
			fx.As(new(commands.OutboxStore)),
		),

		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
			fx.As(new(queries.AvailabilityViewRepo)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
