// Package wire converts between the string encodings used on the API and the
// domain types.
package wire

import (
	"strings"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/shopspring/decimal"
)

// moneyScale matches the DECIMAL(10,2) money columns.
const moneyScale = 2

// ParseDecimal treats an empty string as zero. Values with more than two
// decimal places are rejected rather than rounded.
func ParseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperror.Validation(apperror.MsgInvalidDecimal, field+" must be a decimal number",
			map[string]interface{}{"Field": field})
	}
	if !d.Equal(d.Truncate(moneyScale)) {
		return decimal.Zero, apperror.Validation(apperror.MsgDecimalScale, field+" must have at most 2 decimal places",
			map[string]interface{}{"Field": field, "Scale": moneyScale})
	}
	return d, nil
}

// ParseTime accepts RFC 3339 timestamps and plain YYYY-MM-DD dates. An empty
// string yields the zero time.
func ParseTime(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.Validation(apperror.MsgInvalidTimestamp, field+" must be an RFC 3339 timestamp",
		map[string]interface{}{"Field": field})
}

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
