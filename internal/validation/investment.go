package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api/request"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/model"
)

// ValidSaleStatus contains the sold-share statuses a sale event may carry.
// The unsold sentinel is the creation default and never a sale target.
var ValidSaleStatus = map[string]bool{
	model.StatusPartiallySold: true,
	model.StatusSold:          true,
}

// ValidateCreateInvestment validates an investment creation request.
//
// Required fields:
//   - ticker: non-blank, uppercase symbol, at most 12 characters
//   - purchaseDate: YYYY-MM-DD
//   - initialAmount: positive
//   - initialUnitPrice, transactionFee: non-negative
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	errors := make(map[string]string)

	if err := ValidateTicker(req.Ticker); err != nil {
		errors["ticker"] = err.Error()
	}

	if strings.TrimSpace(req.PurchaseDate) == "" {
		errors["purchaseDate"] = "purchaseDate is required"
	} else if _, err := time.Parse("2006-01-02", req.PurchaseDate); err != nil {
		errors["purchaseDate"] = err.Error()
	}

	if req.InitialAmount <= 0 {
		errors["initialAmount"] = "initialAmount must be positive"
	}

	if req.InitialUnitPrice < 0 {
		errors["initialUnitPrice"] = "initialUnitPrice cannot be negative"
	}

	if req.TransactionFee < 0 {
		errors["transactionFee"] = "transactionFee cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateRecordSale validates a sale-recording request.
//
// Required fields:
//   - soldShareStatus: "Partially Sold" or "Sold"
//   - saleDate: YYYY-MM-DD
//   - quantitySold: positive when partially selling (ignored on full sales)
//   - salePrice: non-negative
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateRecordSale(req request.RecordSaleRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.SoldShareStatus) == "" {
		errors["soldShareStatus"] = "soldShareStatus is required"
	} else if !ValidSaleStatus[req.SoldShareStatus] {
		errors["soldShareStatus"] = fmt.Sprintf("invalid status: %s", req.SoldShareStatus)
	}

	if strings.TrimSpace(req.SaleDate) == "" {
		errors["saleDate"] = "saleDate is required"
	} else if _, err := time.Parse("2006-01-02", req.SaleDate); err != nil {
		errors["saleDate"] = err.Error()
	}

	if req.SoldShareStatus == model.StatusPartiallySold && req.QuantitySold <= 0 {
		errors["quantitySold"] = "quantitySold must be positive"
	}

	if req.SalePrice < 0 {
		errors["salePrice"] = "salePrice cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
