package services

import (
	"sort"

	"github.com/hafidzm/splitledger-backend/models"
	"github.com/hafidzm/splitledger-backend/utils"
)

// OptimizerService reduces a vector of net balances to a small list of
// transfers that settles the group.
type OptimizerService struct{}

// NewOptimizerService creates a new optimizer service
func NewOptimizerService() *OptimizerService {
	return &OptimizerService{}
}

// userAmount is one side of the matching: a user and a positive magnitude
type userAmount struct {
	UserID string
	Amount float64
}

// OptimizeSettlements computes transfers that bring every balance to
// within tolerance of zero. Greedy heuristic: repeatedly pair the largest
// creditor with the largest debtor. The transaction count is at most
// creditors+debtors-1 but is not guaranteed minimal; that is accepted
// behavior, not a defect.
func (s *OptimizerService) OptimizeSettlements(balances []models.UserBalance) []models.SuggestedTransfer {
	creditors, debtors := s.partition(balances)

	sortByAmountDesc(creditors)
	sortByAmountDesc(debtors)

	return s.match(creditors, debtors)
}

// partition splits entries into creditors and debtors, dropping anyone
// already within tolerance of zero. Debtor amounts are stored positive.
func (s *OptimizerService) partition(balances []models.UserBalance) (creditors, debtors []userAmount) {
	for _, b := range balances {
		switch {
		case b.Balance > utils.Tolerance:
			creditors = append(creditors, userAmount{UserID: b.UserID, Amount: b.Balance})
		case b.Balance < -utils.Tolerance:
			debtors = append(debtors, userAmount{UserID: b.UserID, Amount: -b.Balance})
		}
	}
	return creditors, debtors
}

// sortByAmountDesc orders by amount descending; equal amounts order by
// ascending user id so the output is reproducible.
func sortByAmountDesc(entries []userAmount) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Amount != entries[j].Amount {
			return entries[i].Amount > entries[j].Amount
		}
		return entries[i].UserID < entries[j].UserID
	})
}

// match walks both lists front to back, settling min(creditor, debtor)
// each step. Emitted amounts are rounded to 2 decimal places; the
// fractional-cent drift that rounding accumulates is folded into the
// final transaction so applying the output zeroes the input.
func (s *OptimizerService) match(creditors, debtors []userAmount) []models.SuggestedTransfer {
	transfers := []models.SuggestedTransfer{}

	var drift float64
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := utils.Min(creditor.Amount, debtor.Amount)
		emitted := utils.Round(amount)
		if i == len(creditors)-1 && j == len(debtors)-1 {
			emitted = utils.Round(amount + drift)
		}
		drift += amount - emitted

		if emitted > 0 {
			transfers = append(transfers, models.SuggestedTransfer{
				FromUserID: debtor.UserID,
				ToUserID:   creditor.UserID,
				Amount:     emitted,
			})
		}

		creditor.Amount -= amount
		debtor.Amount -= amount

		if creditor.Amount <= utils.Tolerance {
			i++
		}
		if debtor.Amount <= utils.Tolerance {
			j++
		}
	}

	return transfers
}
