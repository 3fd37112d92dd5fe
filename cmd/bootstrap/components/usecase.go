package components

import (
	"furnish-admin/internal/pkg/clock"
	"furnish-admin/internal/usecase/commands"
	"furnish-admin/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
	),
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewPaymentCommands,
		commands.NewWebhookCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewPaymentQueries,
		queries.NewAvailabilityQueries,
	),
)
