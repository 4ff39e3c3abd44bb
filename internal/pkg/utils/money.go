package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// All money arithmetic in the service happens on int64 minor units (cents).
// These helpers convert at the display/parse boundary only.

func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParseAmountToCents accepts "65", "65.0" and "65.00" style decimal strings.
func ParseAmountToCents(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("empty amount")
	}

	parts := strings.SplitN(amount, ".", 2)
	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	var fraction int64
	if len(parts) == 2 {
		frac := parts[1]
		if len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q: more than two decimal places", amount)
		}
		for len(frac) < 2 {
			frac += "0"
		}
		fraction, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
		}
	}

	if whole > math.MaxInt64/100 {
		return 0, fmt.Errorf("amount %q overflows", amount)
	}
	cents := whole * 100
	if strings.HasPrefix(parts[0], "-") {
		cents -= fraction
	} else {
		cents += fraction
	}
	return cents, nil
}

// ParseNonNegativeAmountToCents is ParseAmountToCents for fields where a
// negative amount is never meaningful, such as unit prices and tendered cash.
func ParseNonNegativeAmountToCents(amount string) (int64, error) {
	cents, err := ParseAmountToCents(amount)
	if err != nil {
		return 0, err
	}
	if cents < 0 {
		return 0, fmt.Errorf("amount %q must not be negative", amount)
	}
	return cents, nil
}
