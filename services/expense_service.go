package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/hafidzm/splitledger-backend/models"
	"github.com/hafidzm/splitledger-backend/utils"
)

// ExpenseService handles expense writes. An expense and its splits form
// one logical unit: the splits of an expense must sum to its amount, are
// created with it and fully replaced on update.
type ExpenseService struct {
	store LedgerStore
}

// NewExpenseService creates a new expense service
func NewExpenseService(store LedgerStore) *ExpenseService {
	return &ExpenseService{store: store}
}

// Create records an expense with its splits. The store is not
// transactional from the core's point of view, so a failed split write is
// compensated by deleting the already-created expense.
func (s *ExpenseService) Create(groupID, callerID string, req *models.CreateExpenseRequest) (*models.Expense, error) {
	caller, err := s.store.GetMembership(groupID, callerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, utils.NewForbiddenError("you are not a member of this group")
	}

	paidBy := req.PaidBy
	if paidBy == "" {
		paidBy = callerID
	}

	splits, err := s.validateSplits(groupID, req.Amount, req.Splits)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.Description, "description"); err != nil {
		return nil, err
	}

	payer, err := s.store.GetMembership(groupID, paidBy)
	if err != nil {
		return nil, err
	}
	if payer == nil {
		return nil, utils.NewValidationError("payer is not a member of this group")
	}

	expense := models.NewExpense(uuid.NewString(), groupID, paidBy, req.Description, req.Currency, req.Category, utils.Round(req.Amount))
	if err := s.store.CreateExpense(expense); err != nil {
		return nil, err
	}

	for i := range splits {
		splits[i].ExpenseID = expense.ID
	}
	if err := s.store.CreateSplits(expense.ID, splits); err != nil {
		// Compensating action: never leave an expense behind with no splits.
		if delErr := s.store.DeleteExpense(expense.ID); delErr != nil {
			return nil, utils.NewInternalError(fmt.Sprintf("failed to store splits and to roll back expense: %v", delErr))
		}
		return nil, err
	}

	expense.Splits = splits
	return expense, nil
}

// Update rewrites an expense's mutable fields and replaces its splits.
// Only the payer or a group admin may update.
func (s *ExpenseService) Update(expenseID, callerID string, req *models.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.store.GetExpense(expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, utils.NewNotFoundError("Expense")
	}

	if err := s.requirePayerOrAdmin(expense, callerID); err != nil {
		return nil, err
	}

	splits, err := s.validateSplits(expense.GroupID, req.Amount, req.Splits)
	if err != nil {
		return nil, err
	}

	expense.Amount = utils.Round(req.Amount)
	if req.Description != "" {
		expense.Description = req.Description
	}
	if req.Currency != "" {
		expense.Currency = req.Currency
	}
	if req.Category != "" {
		expense.Category = req.Category
	}

	if err := s.store.UpdateExpense(expense); err != nil {
		return nil, err
	}

	for i := range splits {
		splits[i].ExpenseID = expense.ID
	}
	if err := s.store.ReplaceSplits(expense.ID, splits); err != nil {
		return nil, err
	}

	expense.Splits = splits
	return expense, nil
}

// Delete removes an expense together with its splits. Only the payer or a
// group admin may delete.
func (s *ExpenseService) Delete(expenseID, callerID string) error {
	expense, err := s.store.GetExpense(expenseID)
	if err != nil {
		return err
	}
	if expense == nil {
		return utils.NewNotFoundError("Expense")
	}

	if err := s.requirePayerOrAdmin(expense, callerID); err != nil {
		return err
	}

	return s.store.DeleteExpense(expenseID)
}

// requirePayerOrAdmin checks mutation permission for an expense
func (s *ExpenseService) requirePayerOrAdmin(expense *models.Expense, callerID string) error {
	if expense.PaidBy == callerID {
		return nil
	}
	member, err := s.store.GetMembership(expense.GroupID, callerID)
	if err != nil {
		return err
	}
	if member == nil || !member.IsAdmin {
		return utils.NewForbiddenError("only the payer or a group admin can modify this expense")
	}
	return nil
}

// validateSplits checks split users and the split-sum invariant, and
// converts the inputs to split records.
func (s *ExpenseService) validateSplits(groupID string, amount float64, inputs []models.SplitInput) ([]models.Split, error) {
	if err := utils.ValidatePositive(amount, "amount"); err != nil {
		return nil, err
	}
	if err := utils.ValidateNotEmpty(inputs, "splits"); err != nil {
		return nil, err
	}

	splits := make([]models.Split, len(inputs))
	var sum float64
	for i, input := range inputs {
		if input.UserID == "" {
			return nil, utils.NewValidationError(fmt.Sprintf("split %d: userId is required", i+1))
		}
		if input.ShareAmount < 0 {
			return nil, utils.NewValidationError(fmt.Sprintf("split %d: shareAmount cannot be negative", i+1))
		}
		member, err := s.store.GetMembership(groupID, input.UserID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, utils.NewValidationError(fmt.Sprintf("split user %s is not a member of this group", input.UserID))
		}
		splits[i] = models.Split{UserID: input.UserID, ShareAmount: utils.Round(input.ShareAmount)}
		sum += input.ShareAmount
	}

	if math.Abs(sum-amount) > utils.Tolerance {
		return nil, utils.NewValidationError(fmt.Sprintf("split amounts sum to %.2f, expected %.2f", sum, amount))
	}
	return splits, nil
}
