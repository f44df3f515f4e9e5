package model

import "time"

// Sold-share status values as persisted in the investment table.
// "No" is the unsold sentinel; the realized gain/loss calculation
// branches on it.
const (
	StatusUnsold        = "No"
	StatusPartiallySold = "Partially Sold"
	StatusSold          = "Sold"
)

// Investment represents one purchase lot joined with its aggregated sale
// history. QuantitySold is cumulative across all sale events and SalePrice
// is the average sale price over the history, matching the fetch query.
type Investment struct {
	ID               int64      `json:"id"`
	Ticker           string     `json:"ticker"`
	PurchaseDate     time.Time  `json:"purchaseDate"`
	InitialAmount    int64      `json:"initialAmount"`
	InitialUnitPrice float64    `json:"initialUnitPrice"`
	TransactionFee   float64    `json:"transactionFee"`
	SoldShareStatus  string     `json:"soldShareStatus"`
	RemainingShares  int64      `json:"remainingShares"`
	LastSaleDate     *time.Time `json:"lastSaleDate,omitempty"`
	QuantitySold     int64      `json:"quantitySold"`
	SalePrice        float64    `json:"salePrice"`
}

// SaleEvent represents a single row of the append-only sale history.
// The first row for every investment is the zero-valued seed created at
// purchase time; later rows are actual sale events.
type SaleEvent struct {
	ID              int64      `json:"id"`
	InvestmentID    int64      `json:"investmentId"`
	RemainingShares int64      `json:"remainingShares"`
	SaleDate        *time.Time `json:"saleDate,omitempty"`
	QuantitySold    int64      `json:"quantitySold"`
	SalePrice       float64    `json:"salePrice"`
}

// InvestmentDetail is the enriched per-lot view returned by read endpoints:
// the stored lot plus market data and the recomputed tax figures.
// It is derived on every read and never persisted.
type InvestmentDetail struct {
	Investment
	AssetName    string    `json:"assetName"`
	CurrentPrice float64   `json:"currentPrice"`
	Tax          TaxResult `json:"tax"`
}
