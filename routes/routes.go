package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hafidzm/splitledger-backend/handlers"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine) {
	handlers.InitHandlers()

	v1 := router.Group("/api/v1")
	{
		// Balance endpoints
		v1.GET("/groups/:groupId/balances", handlers.GetGroupBalances)
		v1.GET("/groups/:groupId/settlements/suggested", handlers.GetSuggestedSettlements)

		// Settlement endpoints
		v1.GET("/groups/:groupId/settlements", handlers.GetSettlementHistory)
		v1.POST("/groups/:groupId/settlements", handlers.RecordSettlement)
		v1.POST("/settlements/global", handlers.RecordGlobalSettlement)
		v1.POST("/settlements/:id/accept", handlers.AcceptSettlement)
		v1.POST("/settlements/:id/reject", handlers.RejectSettlement)
		v1.POST("/settlements/:id/resend", handlers.ResendSettlement)
		v1.PUT("/users/me/settlement-mode", handlers.SetSettlementMode)

		// Expense endpoints
		v1.POST("/groups/:groupId/expenses", handlers.CreateExpense)
		v1.PUT("/expenses/:id", handlers.UpdateExpense)
		v1.DELETE("/expenses/:id", handlers.DeleteExpense)

		// Export endpoint
		v1.GET("/groups/:groupId/export", handlers.ExportGroup)
	}
}
