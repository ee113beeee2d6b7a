package services

import "log"

// Event is a notification emitted after a settlement state transition.
type Event struct {
	Type         string  `json:"type"`
	SettlementID string  `json:"settlementId"`
	GroupID      string  `json:"groupId,omitempty"`
	FromUserID   string  `json:"fromUserId"`
	ToUserID     string  `json:"toUserId"`
	Amount       float64 `json:"amount"`
}

// Event types published by the settlement service
const (
	EventSettlementRequested = "settlement_requested"
	EventSettlementAccepted  = "settlement_accepted"
	EventSettlementRejected  = "settlement_rejected"
	EventSettlementResent    = "settlement_resent"
)

// Notifier is the push side channel. Delivery is an external concern;
// the core only publishes.
type Notifier interface {
	Publish(userID string, event Event)
}

// LogNotifier writes events to the process log. It stands in wherever a
// real delivery channel is not wired.
type LogNotifier struct{}

// NewLogNotifier creates a new log notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Publish logs the event for the target user
func (n *LogNotifier) Publish(userID string, event Event) {
	log.Printf("notify user=%s type=%s settlement=%s amount=%.2f", userID, event.Type, event.SettlementID, event.Amount)
}
