package routes

import (
	"topreparateurs/internal/adapter/http/handlers"
	"topreparateurs/internal/adapter/http/middleware"
	"topreparateurs/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
	PathAdmin    = "/admin"
	PathWebhooks = "/webhooks"
)

func addBillingRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, holdHandler *handlers.HoldHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.GET("/:id", paymentHandler.GetPayment)
		payments.POST("/:id/release", middleware.RequireRole(entities.RoleAdmin), paymentHandler.ReleasePayment)
	}

	admin := rg.Group(PathAdmin, middleware.RequireRole(entities.RoleAdmin))
	{
		admin.POST("/holds/sweep", holdHandler.Sweep)
	}
}

// Webhooks authenticate through the processor signature, not a bearer token.
func addWebhookRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler) {
	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/stripe", webhookHandler.Stripe)
	}
}
