package bootstrap

import (
	"furnish-admin/internal/infra/gateway"
	"furnish-admin/internal/pkg/config"
	"furnish-admin/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewPaymentGateway(cfg config.Config) *gateway.StripeGateway {
	return gateway.NewStripeGateway(cfg.Gateway)
}
