package services

import (
	"github.com/hafidzm/splitledger-backend/models"
	"github.com/hafidzm/splitledger-backend/utils"
)

// AdjustmentService merges cross-group settlement effects into a user's
// balance view according to the user's settlement mode. It is pure: it
// never reads or writes the store.
type AdjustmentService struct{}

// NewAdjustmentService creates a new adjustment service
func NewAdjustmentService() *AdjustmentService {
	return &AdjustmentService{}
}

// ApplyGlobalAdjustment computes the adjusted balance view for one user.
// The globalSettlements slice must contain accepted settlements only;
// filtering by status is the caller's responsibility.
//
//   - separate: no cross-group effect, adjustment reported as 0
//   - auto_adjust: adjustment folded into net
//   - hybrid: adjustment computed and exposed for display, net untouched
func (s *AdjustmentService) ApplyGlobalAdjustment(userID string, breakdown *models.BalanceBreakdown, mode string, globalSettlements []*models.Settlement) models.AdjustedBalance {
	originalNet := breakdown.NetBalance

	if mode == utils.SettlementModeSeparate {
		return models.AdjustedBalance{
			Net:              originalNet,
			OriginalNet:      originalNet,
			GlobalAdjustment: 0,
		}
	}

	adjustment := s.sumGlobalEffect(userID, globalSettlements)

	net := originalNet
	if mode == utils.SettlementModeAutoAdjust {
		net = utils.Round(originalNet + adjustment)
	}

	return models.AdjustedBalance{
		Net:              net,
		OriginalNet:      originalNet,
		GlobalAdjustment: adjustment,
	}
}

// sumGlobalEffect totals the user's side of each global settlement:
// minus where the user paid, plus where the user received.
func (s *AdjustmentService) sumGlobalEffect(userID string, settlements []*models.Settlement) float64 {
	var adjustment float64
	for _, settlement := range settlements {
		if settlement.FromUserID == userID {
			adjustment -= settlement.Amount
		}
		if settlement.ToUserID == userID {
			adjustment += settlement.Amount
		}
	}
	return utils.Round(adjustment)
}
