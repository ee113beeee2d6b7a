// models/models.go
package models

import "time"

// Expense represents a shared expense within a group
type Expense struct {
	ID           string  `json:"_id"`
	CreationTime int64   `json:"_creationTime"`
	GroupID      string  `json:"groupId"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Category     string  `json:"category"`
	PaidBy       string  `json:"paidBy"`
	Splits       []Split `json:"splits"`
}

// Split is one user's assigned share of a single expense
type Split struct {
	ExpenseID   string  `json:"expenseId"`
	UserID      string  `json:"userId"`
	ShareAmount float64 `json:"shareAmount"`
}

// Settlement represents a proposed transfer between two users. A settlement
// with an empty GroupID is a global settlement, consumed only by the
// adjustment layer.
type Settlement struct {
	ID             string  `json:"_id"`
	GroupID        string  `json:"groupId,omitempty"`
	FromUserID     string  `json:"fromUserId"`
	ToUserID       string  `json:"toUserId"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	Message        string  `json:"message,omitempty"`
	RejectedReason string  `json:"rejectedReason,omitempty"`
	ResendOf       string  `json:"resendOf,omitempty"`
	CreatedAt      int64   `json:"createdAt"`
	UpdatedAt      int64   `json:"updatedAt"`
}

// IsGlobal reports whether the settlement is not bound to a single group
func (s *Settlement) IsGlobal() bool {
	return s.GroupID == ""
}

// Membership defines which users are in scope for a group's balances
type Membership struct {
	GroupID  string `json:"groupId"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// BalanceBreakdown is the result of one user-group balance computation
type BalanceBreakdown struct {
	TotalPaid           float64 `json:"totalPaid"`
	TotalOwed           float64 `json:"totalOwed"`
	ReceivedSettlements float64 `json:"receivedSettlements"`
	PaidSettlements     float64 `json:"paidSettlements"`
	NetBalance          float64 `json:"netBalance"`
}

// AdjustedBalance is a balance view after the global adjustment layer.
// OriginalNet is always the group-scoped net; GlobalAdjustment is folded
// into Net only under auto_adjust mode.
type AdjustedBalance struct {
	Net              float64 `json:"net"`
	OriginalNet      float64 `json:"original_net"`
	GlobalAdjustment float64 `json:"global_adjustment"`
}

// GroupBalance is one row of a group balance report
type GroupBalance struct {
	UserID              string  `json:"userId"`
	Username            string  `json:"username"`
	TotalPaid           float64 `json:"totalPaid"`
	TotalOwed           float64 `json:"totalOwed"`
	ReceivedSettlements float64 `json:"receivedSettlements"`
	PaidSettlements     float64 `json:"paidSettlements"`
	Net                 float64 `json:"net"`
	OriginalNet         float64 `json:"original_net"`
	GlobalAdjustment    float64 `json:"global_adjustment"`
	IsOwed              bool    `json:"isOwed"`
	Owes                bool    `json:"owes"`
	IsSettled           bool    `json:"isSettled"`
}

// UserBalance is the optimizer's input: one user and their net balance
type UserBalance struct {
	UserID  string  `json:"userId"`
	Balance float64 `json:"balance"`
}

// SuggestedTransfer is one optimizer output transaction
type SuggestedTransfer struct {
	FromUserID   string  `json:"fromUserId"`
	FromUsername string  `json:"fromUsername,omitempty"`
	ToUserID     string  `json:"toUserId"`
	ToUsername   string  `json:"toUsername,omitempty"`
	Amount       float64 `json:"amount"`
}

// NewSettlement creates a pending settlement
func NewSettlement(id, groupID, fromUserID, toUserID string, amount float64, message string) *Settlement {
	now := time.Now().UnixMilli()
	return &Settlement{
		ID:         id,
		GroupID:    groupID,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		Status:     "pending",
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewExpense creates an expense; splits are attached by the caller
func NewExpense(id, groupID, paidBy, description, currency, category string, amount float64) *Expense {
	return &Expense{
		ID:           id,
		CreationTime: time.Now().UnixMilli(),
		GroupID:      groupID,
		PaidBy:       paidBy,
		Description:  description,
		Amount:       amount,
		Currency:     currency,
		Category:     category,
	}
}
