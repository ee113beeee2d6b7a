package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hafidzm/splitledger-backend/models"
	"github.com/hafidzm/splitledger-backend/utils"
)

// RecordSettlement proposes a settlement from the requesting user to a
// fellow group member
func RecordSettlement(c *gin.Context) {
	callerID, ok := requestingUser(c)
	if !ok {
		return
	}

	var request models.RecordSettlementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}
	request.Normalize()

	settlement, err := handlerServices.SettlementService.Record(
		c.Param("groupId"), callerID, request.ToUserID, request.Amount, request.Message)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlement)
}

// RecordGlobalSettlement proposes a settlement not bound to any group
func RecordGlobalSettlement(c *gin.Context) {
	callerID, ok := requestingUser(c)
	if !ok {
		return
	}

	var request models.RecordGlobalSettlementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}
	request.Normalize()

	settlement, err := handlerServices.SettlementService.RecordGlobal(
		callerID, request.ToUserID, request.Amount, request.Message)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlement)
}

// AcceptSettlement accepts a pending settlement addressed to the caller
func AcceptSettlement(c *gin.Context) {
	callerID, ok := requestingUser(c)
	if !ok {
		return
	}

	settlement, err := handlerServices.SettlementService.Accept(c.Param("id"), callerID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlement)
}

// RejectSettlement rejects a pending settlement addressed to the caller
func RejectSettlement(c *gin.Context) {
	callerID, ok := requestingUser(c)
	if !ok {
		return
	}

	var request models.RejectSettlementRequest
	// A missing body means rejection without a reason
	_ = c.ShouldBindJSON(&request)
	request.Normalize()

	settlement, err := handlerServices.SettlementService.Reject(c.Param("id"), callerID, request.Reason)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlement)
}

// ResendSettlement re-proposes a rejected settlement as a new pending one
func ResendSettlement(c *gin.Context) {
	callerID, ok := requestingUser(c)
	if !ok {
		return
	}

	var request models.ResendSettlementRequest
	// A missing body means resend with the original amount and message
	_ = c.ShouldBindJSON(&request)

	settlement, err := handlerServices.SettlementService.Resend(c.Param("id"), callerID, request.Amount, request.Message)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlement)
}

// SetSettlementMode stores the caller's global adjustment mode
func SetSettlementMode(c *gin.Context) {
	callerID, ok := requestingUser(c)
	if !ok {
		return
	}

	var request models.SetSettlementModeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}
	request.Normalize()

	if err := handlerServices.SettlementService.SetMode(callerID, request.Mode); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// GetSettlementHistory lists the group's settlements involving the caller
func GetSettlementHistory(c *gin.Context) {
	callerID, ok := requestingUser(c)
	if !ok {
		return
	}

	settlements, err := handlerServices.SettlementService.History(
		c.Param("groupId"), callerID, c.Query("status"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlements)
}
