package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Berkcanaskin/stellar/internal/common"
)

// StroopsPerUnit is the ledger's fixed-point scale: one native unit is
// 10^7 stroops, giving seven fractional digits of precision.
const StroopsPerUnit = 10_000_000

// ParseAmount converts a decimal string into stroops. The amount must be
// strictly positive, carry at most seven fractional digits, and fit in an
// int64. No rounding is performed; excess precision is an error.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", common.ErrorInvalidAmount)
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("%w: signed amount %q", common.ErrorInvalidAmount, s)
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 7 {
		return 0, fmt.Errorf("%w: more than 7 fractional digits in %q", common.ErrorInvalidAmount, s)
	}
	// pad to exactly 7 fractional digits
	frac += strings.Repeat("0", 7-len(frac))

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrorInvalidAmount, s)
	}
	fracStroops, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrorInvalidAmount, s)
	}

	if units > math.MaxInt64/StroopsPerUnit {
		return 0, fmt.Errorf("%w: %q overflows", common.ErrorInvalidAmount, s)
	}
	stroops := units * StroopsPerUnit
	if stroops > math.MaxInt64-fracStroops {
		return 0, fmt.Errorf("%w: %q overflows", common.ErrorInvalidAmount, s)
	}
	stroops += fracStroops

	if stroops <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", common.ErrorInvalidAmount)
	}
	return stroops, nil
}

// FormatAmount renders stroops as a decimal string with trailing zeros
// trimmed, matching the representation Horizon uses.
func FormatAmount(stroops int64) string {
	units := stroops / StroopsPerUnit
	frac := stroops % StroopsPerUnit
	if frac == 0 {
		return strconv.FormatInt(units, 10)
	}
	s := fmt.Sprintf("%d.%07d", units, frac)
	return strings.TrimRight(s, "0")
}
