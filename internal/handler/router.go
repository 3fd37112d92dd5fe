package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"furnish-admin/internal/handler/api"
	"furnish-admin/internal/handler/middleware"
	"furnish-admin/internal/pkg/config"
	"furnish-admin/internal/pkg/jwt"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, paymentHandler, webhookHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Gateway callbacks authenticate by signature, not by bearer token.
	engine.POST("/webhooks/payments", webhookHandler.HandlePaymentEvent)

	operator := authMiddleware.RequireRoleAtLeast(jwt.RoleOperator)
	admin := authMiddleware.RequireRoleAtLeast(jwt.RoleAdmin)

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodGet, Path: "/slots", Handler: bookingHandler.ListSlots},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: bookingHandler.UpdateStatus, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: bookingHandler.RescheduleBooking, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/reminder", Handler: bookingHandler.SendReminder, Mw: []gin.HandlerFunc{operator}},
			})
		}

		payments := apiGroup.Group("/payments")
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/intents", Handler: paymentHandler.CreateIntent, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodGet, Path: "/:id", Handler: paymentHandler.GetPayment},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: paymentHandler.ConfirmPayment, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: paymentHandler.CancelPayment, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/refunds", Handler: paymentHandler.CreateRefund, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPost, Path: "/:id/retry", Handler: paymentHandler.RetryPayment, Mw: []gin.HandlerFunc{operator}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
