package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// Common validation errors
var (
	ErrInvalidID     = fmt.Errorf("invalid investment ID")
	ErrInvalidTicker = fmt.Errorf("invalid ticker symbol")
)

// maxTickerLength bounds ticker symbols; exchange suffixes like
// "VWCE.DE" stay well under it.
const maxTickerLength = 12

// ValidateID checks that a URL parameter is a positive integer ID and
// returns its parsed value.
func ValidateID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidID, raw)
	}
	return id, nil
}

// ValidateTicker checks that a ticker symbol is present and well-formed.
// This runs before any market-data call so malformed tickers fail fast.
func ValidateTicker(ticker string) error {
	trimmed := strings.TrimSpace(ticker)
	if trimmed == "" {
		return fmt.Errorf("%w: ticker is required", ErrInvalidTicker)
	}
	if len(trimmed) > maxTickerLength {
		return fmt.Errorf("%w: ticker too long: %s", ErrInvalidTicker, trimmed)
	}
	for _, r := range trimmed {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '.' && r != '-' && r != '^' {
			return fmt.Errorf("%w: unexpected character %q", ErrInvalidTicker, r)
		}
	}
	return nil
}
