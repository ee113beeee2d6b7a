package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hafidzm/splitledger-backend/models"
	"github.com/hafidzm/splitledger-backend/utils"
)

// SettlementService governs the settlement lifecycle:
// pending -> accepted | rejected, both terminal. A rejected settlement can
// be resent, which creates a brand-new pending settlement; the rejected
// record is never reopened. Transitions become visible to the balance
// calculator only through subsequent reads.
type SettlementService struct {
	store    LedgerStore
	notifier Notifier
}

// NewSettlementService creates a new settlement service
func NewSettlementService(store LedgerStore, notifier Notifier) *SettlementService {
	return &SettlementService{
		store:    store,
		notifier: notifier,
	}
}

// Record proposes a settlement within a group. Both parties must be group
// members; the record starts out pending.
func (s *SettlementService) Record(groupID, fromUserID, toUserID string, amount float64, message string) (*models.Settlement, error) {
	if err := utils.ValidatePositive(amount, "amount"); err != nil {
		return nil, err
	}
	if err := utils.ValidateDifferentUsers(fromUserID, toUserID); err != nil {
		return nil, err
	}

	fromMember, err := s.store.GetMembership(groupID, fromUserID)
	if err != nil {
		return nil, err
	}
	if fromMember == nil {
		return nil, utils.NewForbiddenError("you are not a member of this group")
	}

	toMember, err := s.store.GetMembership(groupID, toUserID)
	if err != nil {
		return nil, err
	}
	if toMember == nil {
		return nil, utils.NewValidationError("recipient is not a member of this group")
	}

	settlement := models.NewSettlement(uuid.NewString(), groupID, fromUserID, toUserID, amount, message)
	if err := s.store.CreateSettlement(settlement); err != nil {
		return nil, err
	}

	s.notifier.Publish(toUserID, s.event(EventSettlementRequested, settlement))
	return settlement, nil
}

// RecordGlobal proposes a settlement not bound to any group. Only the
// amount and self-settlement checks apply.
func (s *SettlementService) RecordGlobal(fromUserID, toUserID string, amount float64, message string) (*models.Settlement, error) {
	if err := utils.ValidatePositive(amount, "amount"); err != nil {
		return nil, err
	}
	if err := utils.ValidateDifferentUsers(fromUserID, toUserID); err != nil {
		return nil, err
	}

	settlement := models.NewSettlement(uuid.NewString(), "", fromUserID, toUserID, amount, message)
	if err := s.store.CreateSettlement(settlement); err != nil {
		return nil, err
	}

	s.notifier.Publish(toUserID, s.event(EventSettlementRequested, settlement))
	return settlement, nil
}

// Accept transitions a pending settlement to accepted. Only the recipient
// may accept.
func (s *SettlementService) Accept(id, callerID string) (*models.Settlement, error) {
	return s.transition(id, callerID, utils.SettlementStatusAccepted, "")
}

// Reject transitions a pending settlement to rejected, recording the
// reason. Only the recipient may reject.
func (s *SettlementService) Reject(id, callerID, reason string) (*models.Settlement, error) {
	return s.transition(id, callerID, utils.SettlementStatusRejected, reason)
}

// transition applies a terminal transition through a conditional write.
// A losing concurrent transition observes a conflict instead of silently
// overwriting terminal state.
func (s *SettlementService) transition(id, callerID, newStatus, rejectedReason string) (*models.Settlement, error) {
	settlement, err := s.store.GetSettlement(id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, utils.NewNotFoundError("Settlement")
	}
	if settlement.ToUserID != callerID {
		return nil, utils.NewForbiddenError("only the recipient can respond to a settlement")
	}
	if settlement.Status != utils.SettlementStatusPending {
		return nil, utils.NewInvalidStateError(fmt.Sprintf("Settlement is already %s", settlement.Status))
	}

	ok, err := s.store.CASUpdateSettlementStatus(id, utils.SettlementStatusPending, newStatus, rejectedReason)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Re-read to report the state the race was lost to.
		current, err := s.store.GetSettlement(id)
		if err != nil || current == nil {
			return nil, utils.NewConflictError("settlement was modified concurrently")
		}
		return nil, utils.NewConflictError(fmt.Sprintf("settlement already %s", current.Status))
	}

	settlement.Status = newStatus
	settlement.RejectedReason = rejectedReason
	// The store stamped the row during the conditional write; mirror it so
	// the returned record matches what was persisted.
	settlement.UpdatedAt = time.Now().UnixMilli()

	eventType := EventSettlementAccepted
	if newStatus == utils.SettlementStatusRejected {
		eventType = EventSettlementRejected
	}
	s.notifier.Publish(settlement.FromUserID, s.event(eventType, settlement))
	return settlement, nil
}

// Resend creates a new pending settlement replacing a rejected one. The
// rejected record stays as-is for audit; the new record links back to it.
// A zero amount keeps the original amount.
func (s *SettlementService) Resend(id, callerID string, amount float64, message string) (*models.Settlement, error) {
	source, err := s.store.GetSettlement(id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, utils.NewNotFoundError("Settlement")
	}
	if source.FromUserID != callerID {
		return nil, utils.NewForbiddenError("only the original sender can resend a settlement")
	}
	if source.Status != utils.SettlementStatusRejected {
		return nil, utils.NewInvalidStateError(fmt.Sprintf("only a rejected settlement can be resent, this one is %s", source.Status))
	}

	if amount == 0 {
		amount = source.Amount
	}
	if err := utils.ValidatePositive(amount, "amount"); err != nil {
		return nil, err
	}
	if message == "" {
		message = source.Message
	}

	resent := models.NewSettlement(uuid.NewString(), source.GroupID, source.FromUserID, source.ToUserID, amount, message)
	resent.ResendOf = source.ID
	if err := s.store.CreateSettlement(resent); err != nil {
		return nil, err
	}

	s.notifier.Publish(resent.ToUserID, s.event(EventSettlementResent, resent))
	return resent, nil
}

// SetMode stores the caller's global adjustment mode. The mode takes
// effect on the next balance read; nothing is recomputed eagerly.
func (s *SettlementService) SetMode(userID, mode string) error {
	if err := utils.ValidateSettlementMode(mode); err != nil {
		return err
	}
	return s.store.SetSettlementMode(userID, mode)
}

// History lists the group's settlements involving the caller, optionally
// narrowed to one status.
func (s *SettlementService) History(groupID, callerID, status string) ([]*models.Settlement, error) {
	if err := utils.ValidateSettlementStatus(status); err != nil {
		return nil, err
	}

	member, err := s.store.GetMembership(groupID, callerID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, utils.NewForbiddenError("you are not a member of this group")
	}

	return s.store.ListSettlements(SettlementFilter{
		GroupID: groupID,
		UserID:  callerID,
		Status:  status,
	})
}

func (s *SettlementService) event(eventType string, settlement *models.Settlement) Event {
	return Event{
		Type:         eventType,
		SettlementID: settlement.ID,
		GroupID:      settlement.GroupID,
		FromUserID:   settlement.FromUserID,
		ToUserID:     settlement.ToUserID,
		Amount:       settlement.Amount,
	}
}
