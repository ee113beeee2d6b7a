package utils

const (
	// Settlement lifecycle states
	SettlementStatusPending  = "pending"
	SettlementStatusAccepted = "accepted"
	SettlementStatusRejected = "rejected"

	// Global settlement adjustment modes
	SettlementModeSeparate   = "separate"
	SettlementModeAutoAdjust = "auto_adjust"
	SettlementModeHybrid     = "hybrid"

	// HTTP status messages
	ErrInvalidRequest    = "Invalid request"
	ErrMissingUserHeader = "X-User-Id header is required"

	// Precision for monetary calculations
	MoneyPrecision = 100.0

	// Tolerance is the threshold below which a balance, split-sum difference
	// or remaining debt is treated as zero. Every settled/zero check in the
	// codebase must go through this one constant.
	Tolerance = 0.01
)
