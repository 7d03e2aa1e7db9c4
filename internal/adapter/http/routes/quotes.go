package routes

import (
	"topreparateurs/internal/adapter/http/handlers"
	"topreparateurs/internal/adapter/http/middleware"
	"topreparateurs/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes   = "/quotes"
	PathDisputes = "/disputes"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, disputeHandler *handlers.DisputeHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", middleware.RequireRole(entities.RoleClient), quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.GET("/:id/timeline", quoteHandler.GetTimeline)
		quotes.GET("/:id/payments", quoteHandler.ListPayments)
		quotes.POST("/:id/offer", middleware.RequireRole(entities.RoleRepairer), quoteHandler.SubmitOffer)
		quotes.POST("/:id/accept", middleware.RequireRole(entities.RoleClient), quoteHandler.AcceptQuote)
		quotes.POST("/:id/start", middleware.RequireRole(entities.RoleRepairer), quoteHandler.StartWork)
		quotes.POST("/:id/validate", middleware.RequireRole(entities.RoleClient), quoteHandler.ValidateCompletion)
		quotes.POST("/:id/cancel", quoteHandler.CancelQuote)
		quotes.POST("/:id/disputes", middleware.RequireRole(entities.RoleClient, entities.RoleRepairer), disputeHandler.RaiseDispute)
	}
}

func addDisputeRoutes(rg *gin.RouterGroup, disputeHandler *handlers.DisputeHandler) {
	disputes := rg.Group(PathDisputes)
	{
		disputes.GET("/:id", disputeHandler.GetDispute)
		disputes.POST("/:id/resolve", middleware.RequireRole(entities.RoleAdmin), disputeHandler.ResolveDispute)
		disputes.POST("/:id/evidence", middleware.RequireRole(entities.RoleClient, entities.RoleRepairer), disputeHandler.AttachEvidence)
	}
}
