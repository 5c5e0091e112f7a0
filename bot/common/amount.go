package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a parsed transfer amount; All means "everything available"
type Amount struct {
	Value int64
	All   bool
}

// ParseAmount accepts a positive integer with optional comma separators, or
// "all" in any case
func ParseAmount(input string) (Amount, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Amount{}, fmt.Errorf("amount is required")
	}
	if len(s) > MaxAmountLength {
		return Amount{}, fmt.Errorf("amount %q is longer than %d characters", s, MaxAmountLength)
	}
	if strings.EqualFold(s, "all") {
		return Amount{All: true}, nil
	}

	value, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return Amount{}, fmt.Errorf("amount %q is not a number", s)
	}
	if value <= 0 {
		return Amount{}, fmt.Errorf("amount must be positive, got %d", value)
	}
	return Amount{Value: value}, nil
}
