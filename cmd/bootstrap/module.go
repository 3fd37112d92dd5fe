package bootstrap

import (
	"furnish-admin/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	GatewayModule,
	BrokerModule,
	components.StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
