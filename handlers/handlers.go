package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hafidzm/splitledger-backend/repository"
	"github.com/hafidzm/splitledger-backend/services"
	"github.com/hafidzm/splitledger-backend/utils"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	BalanceService    *services.BalanceService
	SettlementService *services.SettlementService
	ExpenseService    *services.ExpenseService
	ExportService     *services.ExportService
}

// NewHandlerServices creates a new handler services instance
func NewHandlerServices(store services.LedgerStore, notifier services.Notifier) *HandlerServices {
	balanceService := services.NewBalanceService(store, services.NewAdjustmentService(), services.NewOptimizerService())
	return &HandlerServices{
		BalanceService:    balanceService,
		SettlementService: services.NewSettlementService(store, notifier),
		ExpenseService:    services.NewExpenseService(store),
		ExportService:     services.NewExportService(balanceService, store),
	}
}

var handlerServices *HandlerServices

// InitHandlers initializes the handler services
func InitHandlers() {
	handlerServices = NewHandlerServices(repository.NewLedgerRepository(), services.NewLogNotifier())
}

// requestingUser extracts the authenticated user id propagated by the
// upstream auth layer. Authentication itself happens before this service.
func requestingUser(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-Id")
	if userID == "" {
		utils.HandleError(c, utils.NewForbiddenError(utils.ErrMissingUserHeader))
		return "", false
	}
	return userID, true
}
