package components

import (
	"furnish-admin/internal/handler"
	"furnish-admin/internal/handler/api"
	"furnish-admin/internal/handler/middleware"
	"furnish-admin/internal/pkg/config"
	"furnish-admin/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewPaymentHandler,
		NewWebhookHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewWebhookHandler(webhookCommands commands.WebhookCommands, cfg config.Config) *api.WebhookHandler {
	return api.NewWebhookHandler(webhookCommands, cfg.Gateway)
}
