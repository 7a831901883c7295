package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// isWholeAmount checks that d is an integer amount of points, optionally required to be positive
func isWholeAmount(d decimal.Decimal, positive bool) bool {
	if !d.IsInteger() || d.IsNegative() {
		return false
	}
	return !positive || d.IsPositive()
}

// hasID checks for a non blank identifier
func hasID(id string) bool {
	return strings.TrimSpace(id) != ""
}
