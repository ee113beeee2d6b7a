package services

import "github.com/hafidzm/splitledger-backend/models"

// SettlementFilter narrows a settlement listing. Zero-valued fields are
// ignored. UserID matches settlements where the user is either side.
type SettlementFilter struct {
	GroupID string
	UserID  string
	Status  string
}

// LedgerStore is the persistence contract the core depends on. The
// services never assume anything about the store beyond this interface;
// repository.LedgerRepository implements it against Postgres and the
// tests implement it in memory.
type LedgerStore interface {
	// Expenses and splits
	ListExpensesAndSplits(groupID string) ([]*models.Expense, error)
	GetExpense(id string) (*models.Expense, error)
	CreateExpense(expense *models.Expense) error
	UpdateExpense(expense *models.Expense) error
	CreateSplits(expenseID string, splits []models.Split) error
	ReplaceSplits(expenseID string, splits []models.Split) error
	// DeleteExpense removes the expense and all of its splits
	DeleteExpense(id string) error

	// Settlements
	ListSettlements(filter SettlementFilter) ([]*models.Settlement, error)
	ListGlobalSettlements(userID, status string) ([]*models.Settlement, error)
	GetSettlement(id string) (*models.Settlement, error)
	CreateSettlement(settlement *models.Settlement) error
	// CASUpdateSettlementStatus applies a status transition only if the
	// persisted status still equals expectedStatus. It returns false when
	// the conditional write matched no row, without touching the record.
	CASUpdateSettlementStatus(id, expectedStatus, newStatus, rejectedReason string) (bool, error)

	// Memberships and preferences
	ListMemberships(groupID string) ([]*models.Membership, error)
	// GetMembership returns (nil, nil) when the user is not a member
	GetMembership(groupID, userID string) (*models.Membership, error)
	GetSettlementMode(userID string) (string, error)
	SetSettlementMode(userID, mode string) error
}
