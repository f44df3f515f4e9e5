package model

import "time"

// TaxResult holds the derived deemed-disposal tax figures for one lot.
// DeemedDisposalPrice is nil until the disposal has triggered and a
// historical close was obtainable; DeemedDisposalDateDisplay follows the
// same availability rule and is formatted DD/MM/YYYY.
type TaxResult struct {
	TotalCost                 float64   `json:"totalCost"`
	UnrealizedGainLoss        float64   `json:"unrealizedGainLoss"`
	DeemedDisposalDate        time.Time `json:"deemedDisposalDate"`
	DeemedDisposalTriggered   bool      `json:"deemedDisposalTriggered"`
	DeemedDisposalPrice       *float64  `json:"deemedDisposalPrice,omitempty"`
	DeemedDisposalGainLoss    float64   `json:"deemedDisposalGainLoss"`
	RealizedGainLoss          float64   `json:"realizedGainLoss"`
	DeemedDisposalDateDisplay string    `json:"deemedDisposalDateDisplay,omitempty"`
}
