package domain

import (
	"errors"
	"fmt"
)

var ErrMerchantNotFound = errors.New("merchant not found")
var ErrMerchantNameExists = errors.New("merchant name already exists")

// CashbackPercentageError reports a default cashback percentage outside the
// configured bounds.
type CashbackPercentageError struct {
	Reason string
}

func (e *CashbackPercentageError) Error() string {
	return fmt.Sprintf("cashback percentage is not valid: %s", e.Reason)
}

// Merchant is a business enrolled in the cashback program.
type Merchant struct {
	ID                        string  `json:"id"`
	Name                      string  `json:"name"`
	DefaultCashbackPercentage float64 `json:"default_cashback_percentage"`
	Active                    bool    `json:"active"`
}

// EnforceCashbackPercentageValidity rejects percentages outside [0, max].
func EnforceCashbackPercentageValidity(percentage, max float64) error {
	if percentage < 0 || percentage > max {
		return &CashbackPercentageError{
			Reason: fmt.Sprintf("default cashback percentage must be between 0 and %g", max),
		}
	}
	return nil
}
