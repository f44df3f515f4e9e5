package validation_test

import (
	"errors"
	"testing"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api/request"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/model"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/validation"
)

// fieldErrors extracts the per-field message map from a validation error.
func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()

	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	return vErr.Fields
}

func TestValidateCreateInvestment(t *testing.T) {
	validReq := request.CreateInvestmentRequest{
		Ticker:           "VWCE.DE",
		PurchaseDate:     "2024-11-01",
		InitialAmount:    10,
		InitialUnitPrice: 10.0,
		TransactionFee:   1.0,
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		if err := validation.ValidateCreateInvestment(validReq); err != nil {
			t.Errorf("Expected valid request, got %v", err)
		}
	})

	t.Run("zero transaction fee is allowed", func(t *testing.T) {
		req := validReq
		req.TransactionFee = 0
		if err := validation.ValidateCreateInvestment(req); err != nil {
			t.Errorf("Expected valid request, got %v", err)
		}
	})

	t.Run("rejects missing ticker", func(t *testing.T) {
		req := validReq
		req.Ticker = ""
		fields := fieldErrors(t, validation.ValidateCreateInvestment(req))
		if _, ok := fields["ticker"]; !ok {
			t.Errorf("Expected ticker field error, got %v", fields)
		}
	})

	t.Run("rejects malformed purchase date", func(t *testing.T) {
		req := validReq
		req.PurchaseDate = "01/11/2024"
		fields := fieldErrors(t, validation.ValidateCreateInvestment(req))
		if _, ok := fields["purchaseDate"]; !ok {
			t.Errorf("Expected purchaseDate field error, got %v", fields)
		}
	})

	t.Run("rejects non-positive initial amount", func(t *testing.T) {
		req := validReq
		req.InitialAmount = 0
		fields := fieldErrors(t, validation.ValidateCreateInvestment(req))
		if _, ok := fields["initialAmount"]; !ok {
			t.Errorf("Expected initialAmount field error, got %v", fields)
		}
	})

	t.Run("rejects negative prices and fees", func(t *testing.T) {
		req := validReq
		req.InitialUnitPrice = -1
		req.TransactionFee = -1
		fields := fieldErrors(t, validation.ValidateCreateInvestment(req))
		if len(fields) != 2 {
			t.Errorf("Expected 2 field errors, got %v", fields)
		}
	})

	t.Run("collects every failing field at once", func(t *testing.T) {
		fields := fieldErrors(t, validation.ValidateCreateInvestment(request.CreateInvestmentRequest{}))
		for _, field := range []string{"ticker", "purchaseDate", "initialAmount"} {
			if _, ok := fields[field]; !ok {
				t.Errorf("Expected %s field error, got %v", field, fields)
			}
		}
	})
}

func TestValidateRecordSale(t *testing.T) {
	t.Run("accepts a partial sale", func(t *testing.T) {
		err := validation.ValidateRecordSale(request.RecordSaleRequest{
			SoldShareStatus: model.StatusPartiallySold,
			SaleDate:        "2026-03-01",
			QuantitySold:    4,
			SalePrice:       14.0,
		})
		if err != nil {
			t.Errorf("Expected valid request, got %v", err)
		}
	})

	t.Run("full sale needs no quantity", func(t *testing.T) {
		err := validation.ValidateRecordSale(request.RecordSaleRequest{
			SoldShareStatus: model.StatusSold,
			SaleDate:        "2026-03-01",
			SalePrice:       14.0,
		})
		if err != nil {
			t.Errorf("Expected valid request, got %v", err)
		}
	})

	t.Run("partial sale requires a positive quantity", func(t *testing.T) {
		err := validation.ValidateRecordSale(request.RecordSaleRequest{
			SoldShareStatus: model.StatusPartiallySold,
			SaleDate:        "2026-03-01",
			SalePrice:       14.0,
		})
		fields := fieldErrors(t, err)
		if _, ok := fields["quantitySold"]; !ok {
			t.Errorf("Expected quantitySold field error, got %v", fields)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		err := validation.ValidateRecordSale(request.RecordSaleRequest{
			SoldShareStatus: "Mostly Sold",
			SaleDate:        "2026-03-01",
			SalePrice:       14.0,
		})
		fields := fieldErrors(t, err)
		if _, ok := fields["soldShareStatus"]; !ok {
			t.Errorf("Expected soldShareStatus field error, got %v", fields)
		}
	})

	t.Run("the unsold sentinel is not a sale target", func(t *testing.T) {
		err := validation.ValidateRecordSale(request.RecordSaleRequest{
			SoldShareStatus: model.StatusUnsold,
			SaleDate:        "2026-03-01",
			SalePrice:       14.0,
		})
		if err == nil {
			t.Error("Expected error for the unsold status")
		}
	})

	t.Run("rejects malformed sale date", func(t *testing.T) {
		err := validation.ValidateRecordSale(request.RecordSaleRequest{
			SoldShareStatus: model.StatusSold,
			SaleDate:        "yesterday",
			SalePrice:       14.0,
		})
		fields := fieldErrors(t, err)
		if _, ok := fields["saleDate"]; !ok {
			t.Errorf("Expected saleDate field error, got %v", fields)
		}
	})

	t.Run("rejects negative sale price", func(t *testing.T) {
		err := validation.ValidateRecordSale(request.RecordSaleRequest{
			SoldShareStatus: model.StatusSold,
			SaleDate:        "2026-03-01",
			SalePrice:       -1,
		})
		fields := fieldErrors(t, err)
		if _, ok := fields["salePrice"]; !ok {
			t.Errorf("Expected salePrice field error, got %v", fields)
		}
	})
}
