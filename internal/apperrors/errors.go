package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrPriceNotFound indicates no close price exists for a symbol and date combination.
	ErrPriceNotFound = errors.New("no price data for period")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientShares indicates that a sale cannot be recorded because the
	// lot does not hold enough remaining shares.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrInvalidTicker indicates that a ticker symbol is missing or malformed.
	// Raised before any market-data call is attempted.
	ErrInvalidTicker = errors.New("invalid ticker symbol")

	// ErrAlreadySold indicates a sale was recorded against a fully sold lot.
	ErrAlreadySold = errors.New("investment is already fully sold")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveInvestments = errors.New("failed to retrieve investments")
	ErrFailedToRetrieveInvestment  = errors.New("failed to retrieve investment")
	ErrFailedToRetrieveHistory     = errors.New("failed to retrieve sale history")
	ErrFailedToComputeTax          = errors.New("failed to compute tax figures")
	ErrFailedToReset               = errors.New("failed to reset investment tables")
)
