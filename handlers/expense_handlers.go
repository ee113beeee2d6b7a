package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hafidzm/splitledger-backend/models"
	"github.com/hafidzm/splitledger-backend/utils"
)

// CreateExpense records an expense with its splits
func CreateExpense(c *gin.Context) {
	callerID, ok := requestingUser(c)
	if !ok {
		return
	}

	var request models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}
	request.Normalize()

	expense, err := handlerServices.ExpenseService.Create(c.Param("groupId"), callerID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, expense)
}

// UpdateExpense rewrites an expense and replaces its splits
func UpdateExpense(c *gin.Context) {
	callerID, ok := requestingUser(c)
	if !ok {
		return
	}

	var request models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}
	request.Normalize()

	expense, err := handlerServices.ExpenseService.Update(c.Param("id"), callerID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, expense)
}

// DeleteExpense removes an expense together with its splits
func DeleteExpense(c *gin.Context) {
	callerID, ok := requestingUser(c)
	if !ok {
		return
	}

	if err := handlerServices.ExpenseService.Delete(c.Param("id"), callerID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}
