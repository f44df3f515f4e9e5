// Package tax implements the deemed-disposal exit-tax calculations for a
// single investment lot. Every function is a pure computation over the lot's
// fields plus an externally supplied as-of date and price lookup, so results
// are deterministic and independently testable.
package tax

import (
	"fmt"
	"math"
	"time"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/model"
)

// HoldingPeriodDays is the deemed-disposal holding period: 8 years modeled
// as 365.25 days per year. The day count is fixed at 2922; a calendar-aware
// 8-year add differs by up to 2 days depending on leap years and must not
// be substituted.
const HoldingPeriodDays = 2922

// CloseLookup returns the close price for the trading session covering
// [date, date+1day). A failed lookup (market holiday, delisted ticker)
// returns an error; no default price is ever substituted.
type CloseLookup func(date time.Time) (float64, error)

// round2 rounds half away from zero to 2 decimal places. This is the single
// rounding convention used by every monetary figure in the package.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TotalCost returns the original cost of the lot, excluding the
// transaction fee.
func TotalCost(lot model.Investment) float64 {
	return float64(lot.InitialAmount) * lot.InitialUnitPrice
}

// UnrealizedGainLoss returns the paper gain/loss at the given current price.
// The transaction fee is subtracted once regardless of lot size: it models a
// flat per-purchase fee, not a per-unit fee.
func UnrealizedGainLoss(lot model.Investment, currentPrice float64) float64 {
	return round2((currentPrice-lot.InitialUnitPrice)*float64(lot.InitialAmount) - lot.TransactionFee)
}

// DeemedDisposalDate returns the date on which the deemed disposal falls due:
// the purchase date plus HoldingPeriodDays.
func DeemedDisposalDate(lot model.Investment) time.Time {
	return lot.PurchaseDate.AddDate(0, 0, HoldingPeriodDays)
}

// Triggered reports whether the deemed disposal has fallen due as of the
// given date.
func Triggered(lot model.Investment, asOf time.Time) bool {
	return !asOf.Before(DeemedDisposalDate(lot))
}

// lastCloseDate snaps a date back to the most recent Friday on or before it,
// approximating the last trading day of that week without a holiday calendar:
// date - ((weekday - 4) mod 7) days, with Monday=0..Sunday=6 and Friday=4.
func lastCloseDate(date time.Time) time.Time {
	weekday := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -((weekday - 4 + 7) % 7))
}

// DeemedDisposalPrice returns the close price used for the deemed disposal:
// the historical close on the Friday on/before the disposal date, rounded to
// 2 decimals. The second return is false while the disposal has not
// triggered; the price is absent, not zero.
func DeemedDisposalPrice(lot model.Investment, asOf time.Time, lookup CloseLookup) (float64, bool, error) {
	if !Triggered(lot, asOf) {
		return 0, false, nil
	}

	price, err := lookup(lastCloseDate(DeemedDisposalDate(lot)))
	if err != nil {
		return 0, false, fmt.Errorf("deemed disposal price lookup: %w", err)
	}

	return round2(price), true, nil
}

// DeemedDisposalGainLoss returns the gain/loss taxed at the deemed disposal,
// or 0 while it has not triggered. The full initial amount is used, not the
// remaining shares: the deemed disposal taxes the whole original holding on
// paper, including shares never sold.
func DeemedDisposalGainLoss(lot model.Investment, asOf time.Time, lookup CloseLookup) (float64, error) {
	price, ok, err := DeemedDisposalPrice(lot, asOf, lookup)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	return round2(float64(lot.InitialAmount) * (price - lot.InitialUnitPrice)), nil
}

// RealizedGainLoss returns the gain/loss recognized on actual sales. Once any
// sale has happened, the deemed-disposal gain/loss is subtracted so gains
// already taxed at the 8-year mark are not taxed twice. While the lot is in
// the unsold state the subtraction is omitted entirely, even if the deemed
// disposal has triggered: the deemed figure is then only reported in its own
// field, and this one stays at the zero-valued sale defaults.
func RealizedGainLoss(lot model.Investment, asOf time.Time, lookup CloseLookup) (float64, error) {
	saleProceeds := float64(lot.QuantitySold) * (lot.SalePrice - lot.InitialUnitPrice)

	if lot.SoldShareStatus != model.StatusUnsold {
		deemed, err := DeemedDisposalGainLoss(lot, asOf, lookup)
		if err != nil {
			return 0, err
		}
		return round2(saleProceeds - deemed), nil
	}

	return round2(saleProceeds), nil
}

// FormatDeemedDisposalDate returns the disposal date as DD/MM/YYYY, but only
// once the disposal has triggered and a historical price was obtainable.
// The empty string means absent.
func FormatDeemedDisposalDate(lot model.Investment, asOf time.Time, lookup CloseLookup) (string, error) {
	_, ok, err := DeemedDisposalPrice(lot, asOf, lookup)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	return DeemedDisposalDate(lot).Format("02/01/2006"), nil
}

// Compute derives every tax figure for one lot in a single pass. Either all
// fields compute successfully or the whole per-lot computation fails; there
// are no partial results.
func Compute(lot model.Investment, currentPrice float64, asOf time.Time, lookup CloseLookup) (model.TaxResult, error) {
	result := model.TaxResult{
		TotalCost:               TotalCost(lot),
		UnrealizedGainLoss:      UnrealizedGainLoss(lot, currentPrice),
		DeemedDisposalDate:      DeemedDisposalDate(lot),
		DeemedDisposalTriggered: Triggered(lot, asOf),
	}

	price, ok, err := DeemedDisposalPrice(lot, asOf, lookup)
	if err != nil {
		return model.TaxResult{}, err
	}
	if ok {
		result.DeemedDisposalPrice = &price
		result.DeemedDisposalGainLoss = round2(float64(lot.InitialAmount) * (price - lot.InitialUnitPrice))
		result.DeemedDisposalDateDisplay = result.DeemedDisposalDate.Format("02/01/2006")
	}

	realized, err := RealizedGainLoss(lot, asOf, lookup)
	if err != nil {
		return model.TaxResult{}, err
	}
	result.RealizedGainLoss = realized

	return result, nil
}
