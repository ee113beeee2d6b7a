// models/requests.go
//
// Request models accept both camelCase and snake_case spellings for the
// same logical field. Normalize() is the single boundary that collapses
// every alias onto the canonical field; handlers call it right after
// binding, before any validation or computation sees the request.
package models

// RecordSettlementRequest is the body of a settlement proposal
type RecordSettlementRequest struct {
	ToUserID      string  `json:"toUserId"`
	ToUserIDSnake string  `json:"to_user_id"`
	Amount        float64 `json:"amount"`
	Message       string  `json:"message"`
}

// Normalize collapses alias fields onto the canonical ones
func (r *RecordSettlementRequest) Normalize() {
	if r.ToUserID == "" {
		r.ToUserID = r.ToUserIDSnake
	}
}

// RecordGlobalSettlementRequest is the body of a cross-group settlement
type RecordGlobalSettlementRequest struct {
	ToUserID      string  `json:"toUserId"`
	ToUserIDSnake string  `json:"to_user_id"`
	Amount        float64 `json:"amount"`
	Message       string  `json:"message"`
}

// Normalize collapses alias fields onto the canonical ones
func (r *RecordGlobalSettlementRequest) Normalize() {
	if r.ToUserID == "" {
		r.ToUserID = r.ToUserIDSnake
	}
}

// RejectSettlementRequest carries the optional rejection reason
type RejectSettlementRequest struct {
	Reason      string `json:"reason"`
	ReasonSnake string `json:"rejected_reason"`
}

// Normalize collapses alias fields onto the canonical ones
func (r *RejectSettlementRequest) Normalize() {
	if r.Reason == "" {
		r.Reason = r.ReasonSnake
	}
}

// ResendSettlementRequest carries the optional replacement amount and
// message for a resend. A zero amount means "keep the original amount".
type ResendSettlementRequest struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}

// SetSettlementModeRequest carries the caller's global adjustment mode
type SetSettlementModeRequest struct {
	Mode      string `json:"mode"`
	ModeSnake string `json:"settlement_mode"`
}

// Normalize collapses alias fields onto the canonical ones
func (r *SetSettlementModeRequest) Normalize() {
	if r.Mode == "" {
		r.Mode = r.ModeSnake
	}
}

// SplitInput is one split line inside an expense request
type SplitInput struct {
	UserID           string  `json:"userId"`
	UserIDSnake      string  `json:"user_id"`
	ShareAmount      float64 `json:"shareAmount"`
	ShareAmountSnake float64 `json:"share_amount"`
}

// CreateExpenseRequest is the body of an expense creation
type CreateExpenseRequest struct {
	Description   string       `json:"description"`
	Amount        float64      `json:"amount"`
	Currency      string       `json:"currency"`
	Category      string       `json:"category"`
	PaidBy        string       `json:"paidBy"`
	PaidBySnake   string       `json:"paid_by"`
	Splits        []SplitInput `json:"splits"`
}

// Normalize collapses alias fields onto the canonical ones
func (r *CreateExpenseRequest) Normalize() {
	if r.PaidBy == "" {
		r.PaidBy = r.PaidBySnake
	}
	for i := range r.Splits {
		if r.Splits[i].UserID == "" {
			r.Splits[i].UserID = r.Splits[i].UserIDSnake
		}
		if r.Splits[i].ShareAmount == 0 {
			r.Splits[i].ShareAmount = r.Splits[i].ShareAmountSnake
		}
	}
}

// UpdateExpenseRequest fully replaces an expense's mutable fields and its
// splits; splits are never patched in place
type UpdateExpenseRequest struct {
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	Currency    string       `json:"currency"`
	Category    string       `json:"category"`
	Splits      []SplitInput `json:"splits"`
}

// Normalize collapses alias fields onto the canonical ones
func (r *UpdateExpenseRequest) Normalize() {
	for i := range r.Splits {
		if r.Splits[i].UserID == "" {
			r.Splits[i].UserID = r.Splits[i].UserIDSnake
		}
		if r.Splits[i].ShareAmount == 0 {
			r.Splits[i].ShareAmount = r.Splits[i].ShareAmountSnake
		}
	}
}
