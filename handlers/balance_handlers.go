package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hafidzm/splitledger-backend/utils"
)

// GetGroupBalances returns the balance report for every group member
func GetGroupBalances(c *gin.Context) {
	balances, err := handlerServices.BalanceService.GetGroupBalances(c.Param("groupId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, balances)
}

// GetSuggestedSettlements returns the transfers that settle the group
func GetSuggestedSettlements(c *gin.Context) {
	transfers, err := handlerServices.BalanceService.GetSuggestedSettlements(c.Param("groupId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, transfers)
}
