package services

import (
	"fmt"
	"sync"

	"github.com/hafidzm/splitledger-backend/models"
)

// fakeStore is an in-memory LedgerStore for service tests.
type fakeStore struct {
	mu          sync.Mutex
	expenses    []*models.Expense
	settlements []*models.Settlement
	memberships []*models.Membership
	modes       map[string]string

	// splitErr makes CreateSplits fail, to exercise the compensating
	// expense delete.
	splitErr error
	// beforeCAS runs at the start of CASUpdateSettlementStatus, to
	// simulate a concurrent transition winning the race.
	beforeCAS func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{modes: make(map[string]string)}
}

func (f *fakeStore) addMember(groupID, userID, username string, isAdmin bool) {
	f.memberships = append(f.memberships, &models.Membership{
		GroupID:  groupID,
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
	})
}

// addExpense stores an expense paid by one user and split per shares.
func (f *fakeStore) addExpense(groupID, paidBy string, amount float64, shares map[string]float64) *models.Expense {
	expense := models.NewExpense(fmt.Sprintf("e%d", len(f.expenses)+1), groupID, paidBy, "test expense", "USD", "general", amount)
	for userID, share := range shares {
		expense.Splits = append(expense.Splits, models.Split{ExpenseID: expense.ID, UserID: userID, ShareAmount: share})
	}
	f.expenses = append(f.expenses, expense)
	return expense
}

func (f *fakeStore) addSettlement(groupID, from, to string, amount float64, status string) *models.Settlement {
	s := models.NewSettlement(fmt.Sprintf("s%d", len(f.settlements)+1), groupID, from, to, amount, "")
	s.Status = status
	f.settlements = append(f.settlements, s)
	return s
}

func (f *fakeStore) ListExpensesAndSplits(groupID string) ([]*models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Expense
	for _, e := range f.expenses {
		if e.GroupID == groupID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) GetExpense(id string) (*models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateExpense(expense *models.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expenses = append(f.expenses, expense)
	return nil
}

func (f *fakeStore) UpdateExpense(expense *models.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.expenses {
		if e.ID == expense.ID {
			f.expenses[i] = expense
			return nil
		}
	}
	return fmt.Errorf("expense %s not found", expense.ID)
}

func (f *fakeStore) CreateSplits(expenseID string, splits []models.Split) error {
	if f.splitErr != nil {
		return f.splitErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.expenses {
		if e.ID == expenseID {
			e.Splits = splits
			return nil
		}
	}
	return fmt.Errorf("expense %s not found", expenseID)
}

func (f *fakeStore) ReplaceSplits(expenseID string, splits []models.Split) error {
	return f.CreateSplits(expenseID, splits)
}

func (f *fakeStore) DeleteExpense(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.expenses {
		if e.ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) ListSettlements(filter SettlementFilter) ([]*models.Settlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Settlement
	for _, s := range f.settlements {
		if filter.GroupID != "" && s.GroupID != filter.GroupID {
			continue
		}
		if filter.UserID != "" && s.FromUserID != filter.UserID && s.ToUserID != filter.UserID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) ListGlobalSettlements(userID, status string) ([]*models.Settlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Settlement
	for _, s := range f.settlements {
		if !s.IsGlobal() {
			continue
		}
		if s.FromUserID != userID && s.ToUserID != userID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) GetSettlement(id string) (*models.Settlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.settlements {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateSettlement(settlement *models.Settlement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settlements = append(f.settlements, settlement)
	return nil
}

func (f *fakeStore) CASUpdateSettlementStatus(id, expectedStatus, newStatus, rejectedReason string) (bool, error) {
	if f.beforeCAS != nil {
		f.beforeCAS()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.settlements {
		if s.ID != id {
			continue
		}
		if s.Status != expectedStatus {
			return false, nil
		}
		s.Status = newStatus
		s.RejectedReason = rejectedReason
		return true, nil
	}
	return false, nil
}

func (f *fakeStore) ListMemberships(groupID string) ([]*models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Membership
	for _, m := range f.memberships {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) GetMembership(groupID, userID string) (*models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.memberships {
		if m.GroupID == groupID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetSettlementMode(userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modes[userID], nil
}

func (f *fakeStore) SetSettlementMode(userID, mode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modes[userID] = mode
	return nil
}

// setStatus flips a settlement's status directly, bypassing the CAS.
func (f *fakeStore) setStatus(id, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.settlements {
		if s.ID == id {
			s.Status = status
		}
	}
}

var _ LedgerStore = (*fakeStore)(nil)
