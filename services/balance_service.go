package services

import (
	"sort"
	"sync"

	"github.com/hafidzm/splitledger-backend/models"
	"github.com/hafidzm/splitledger-backend/utils"
)

// BalanceService derives per-user balances from the ledger. Every call
// recomputes from current store state; nothing is cached, so a balance
// can never drift out of sync with the underlying settlements.
type BalanceService struct {
	store      LedgerStore
	adjustment *AdjustmentService
	optimizer  *OptimizerService
}

// NewBalanceService creates a new balance service
func NewBalanceService(store LedgerStore, adjustment *AdjustmentService, optimizer *OptimizerService) *BalanceService {
	return &BalanceService{
		store:      store,
		adjustment: adjustment,
		optimizer:  optimizer,
	}
}

// CalculateUserGroupBalance computes one user's balance within a group.
// Only accepted settlements participate; pending and rejected ones never
// affect a balance.
func (s *BalanceService) CalculateUserGroupBalance(userID, groupID string) (*models.BalanceBreakdown, error) {
	expenses, err := s.store.ListExpensesAndSplits(groupID)
	if err != nil {
		return nil, err
	}

	var totalPaid, totalOwed float64
	for _, expense := range expenses {
		if expense.PaidBy == userID {
			totalPaid += expense.Amount
		}
		for _, split := range expense.Splits {
			if split.UserID == userID {
				totalOwed += split.ShareAmount
			}
		}
	}

	settlements, err := s.store.ListSettlements(SettlementFilter{
		GroupID: groupID,
		Status:  utils.SettlementStatusAccepted,
	})
	if err != nil {
		return nil, err
	}

	var received, paid float64
	for _, settlement := range settlements {
		if settlement.ToUserID == userID {
			received += settlement.Amount
		}
		if settlement.FromUserID == userID {
			paid += settlement.Amount
		}
	}

	// Settlements already received reduce what is still owed to the user;
	// settlements already paid reduce what the user still owes.
	return &models.BalanceBreakdown{
		TotalPaid:           utils.Round(totalPaid),
		TotalOwed:           utils.Round(totalOwed),
		ReceivedSettlements: utils.Round(received),
		PaidSettlements:     utils.Round(paid),
		NetBalance:          utils.Round(totalPaid - totalOwed - received + paid),
	}, nil
}

// GetGroupBalances computes the balance of every group member. The
// per-member computations are independent, so they run concurrently and
// are joined before the result is assembled.
func (s *BalanceService) GetGroupBalances(groupID string) ([]models.GroupBalance, error) {
	members, err := s.store.ListMemberships(groupID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, utils.NewNotFoundError("Group")
	}

	balances := make([]models.GroupBalance, len(members))
	errs := make([]error, len(members))

	var wg sync.WaitGroup
	for i, member := range members {
		wg.Add(1)
		go func(i int, member *models.Membership) {
			defer wg.Done()
			balance, err := s.memberBalance(member, groupID)
			if err != nil {
				errs[i] = err
				return
			}
			balances[i] = *balance
		}(i, member)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].UserID < balances[j].UserID
	})
	return balances, nil
}

// memberBalance computes one member's row: the group-scoped breakdown
// passed through the member's global adjustment mode, then classified.
func (s *BalanceService) memberBalance(member *models.Membership, groupID string) (*models.GroupBalance, error) {
	breakdown, err := s.CalculateUserGroupBalance(member.UserID, groupID)
	if err != nil {
		return nil, err
	}

	mode, err := s.store.GetSettlementMode(member.UserID)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = utils.SettlementModeSeparate
	}

	var globals []*models.Settlement
	if mode != utils.SettlementModeSeparate {
		globals, err = s.store.ListGlobalSettlements(member.UserID, utils.SettlementStatusAccepted)
		if err != nil {
			return nil, err
		}
	}

	adjusted := s.adjustment.ApplyGlobalAdjustment(member.UserID, breakdown, mode, globals)

	return &models.GroupBalance{
		UserID:              member.UserID,
		Username:            member.Username,
		TotalPaid:           breakdown.TotalPaid,
		TotalOwed:           breakdown.TotalOwed,
		ReceivedSettlements: breakdown.ReceivedSettlements,
		PaidSettlements:     breakdown.PaidSettlements,
		Net:                 adjusted.Net,
		OriginalNet:         adjusted.OriginalNet,
		GlobalAdjustment:    adjusted.GlobalAdjustment,
		IsOwed:              adjusted.Net > utils.Tolerance,
		Owes:                adjusted.Net < -utils.Tolerance,
		IsSettled:           utils.IsZero(adjusted.Net),
	}, nil
}

// GetSuggestedSettlements feeds the group's balance vector into the
// optimizer and resolves usernames on the resulting transfers.
func (s *BalanceService) GetSuggestedSettlements(groupID string) ([]models.SuggestedTransfer, error) {
	balances, err := s.GetGroupBalances(groupID)
	if err != nil {
		return nil, err
	}

	vector := make([]models.UserBalance, len(balances))
	usernames := make(map[string]string, len(balances))
	for i, balance := range balances {
		vector[i] = models.UserBalance{UserID: balance.UserID, Balance: balance.Net}
		usernames[balance.UserID] = balance.Username
	}

	transfers := s.optimizer.OptimizeSettlements(vector)
	for i := range transfers {
		transfers[i].FromUsername = usernames[transfers[i].FromUserID]
		transfers[i].ToUsername = usernames[transfers[i].ToUserID]
	}
	return transfers, nil
}
