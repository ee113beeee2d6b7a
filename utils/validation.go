package utils

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositive checks if a number is positive
func ValidatePositive(value float64, fieldName string) error {
	if value <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateDifferentUsers checks that a transfer is not a self-settlement
func ValidateDifferentUsers(fromUserID, toUserID string) error {
	if fromUserID == toUserID {
		return NewValidationError("cannot settle with yourself")
	}
	return nil
}

// ValidateSettlementStatus checks a status filter value
func ValidateSettlementStatus(status string) error {
	switch status {
	case "", SettlementStatusPending, SettlementStatusAccepted, SettlementStatusRejected:
		return nil
	}
	return NewValidationError(fmt.Sprintf("unknown settlement status %q", status))
}

// ValidateSettlementMode checks a per-user adjustment mode value
func ValidateSettlementMode(mode string) error {
	switch mode {
	case SettlementModeSeparate, SettlementModeAutoAdjust, SettlementModeHybrid:
		return nil
	}
	return NewValidationError(fmt.Sprintf("unknown settlement mode %q", mode))
}
