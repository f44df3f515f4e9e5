package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/apperrors"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/model"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/repository"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/testutil"
)

// TestInsertInvestment verifies that creating a lot also creates its
// zero-valued seed history row and that all purchase fields round-trip.
//
// WHY: every later aggregation (cumulative quantity, average sale price)
// runs over the full history including the seed row, so the seed row must
// exist from the moment the lot does.
func TestInsertInvestment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates lot with seed history row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInvestmentRepository(db)

		id, err := repo.InsertInvestment(ctx, model.Investment{
			Ticker:           "VWCE.DE",
			PurchaseDate:     time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
			InitialAmount:    10,
			InitialUnitPrice: 10.0,
			TransactionFee:   1.0,
			SoldShareStatus:  model.StatusUnsold,
		})
		if err != nil {
			t.Fatalf("Failed to insert investment: %v", err)
		}
		if id != 1 {
			t.Errorf("Expected first lot to get ID 1, got %d", id)
		}

		testutil.AssertRowCount(t, db, "investment", 1)
		testutil.AssertRowCount(t, db, "sale_history", 1)
	})

	t.Run("round trips all purchase fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInvestmentRepository(db)

		purchaseDate := time.Date(2019, time.March, 15, 0, 0, 0, 0, time.UTC)
		id, err := repo.InsertInvestment(ctx, model.Investment{
			Ticker:           "IWDA.AS",
			PurchaseDate:     purchaseDate,
			InitialAmount:    42,
			InitialUnitPrice: 55.37,
			TransactionFee:   2.5,
			SoldShareStatus:  model.StatusUnsold,
		})
		if err != nil {
			t.Fatalf("Failed to insert investment: %v", err)
		}

		stored, err := repo.FetchInvestment(ctx, id)
		if err != nil {
			t.Fatalf("Failed to fetch investment: %v", err)
		}

		if stored.Ticker != "IWDA.AS" {
			t.Errorf("Expected ticker IWDA.AS, got %s", stored.Ticker)
		}
		if !stored.PurchaseDate.Equal(purchaseDate) {
			t.Errorf("Expected purchase date %v, got %v", purchaseDate, stored.PurchaseDate)
		}
		if stored.InitialAmount != 42 {
			t.Errorf("Expected initial amount 42, got %d", stored.InitialAmount)
		}
		if stored.InitialUnitPrice != 55.37 {
			t.Errorf("Expected initial unit price 55.37, got %v", stored.InitialUnitPrice)
		}
		if stored.TransactionFee != 2.5 {
			t.Errorf("Expected transaction fee 2.5, got %v", stored.TransactionFee)
		}
		if stored.SoldShareStatus != model.StatusUnsold {
			t.Errorf("Expected status %q, got %q", model.StatusUnsold, stored.SoldShareStatus)
		}
		if stored.RemainingShares != 42 {
			t.Errorf("Expected remaining shares 42, got %d", stored.RemainingShares)
		}
		if stored.QuantitySold != 0 {
			t.Errorf("Expected quantity sold 0, got %d", stored.QuantitySold)
		}
		if stored.LastSaleDate != nil {
			t.Errorf("Expected no last sale date, got %v", stored.LastSaleDate)
		}
	})
}

// TestFetchInvestment verifies single-lot fetch including the not-found path.
func TestFetchInvestment(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewInvestmentRepository(db)

	t.Run("returns ErrInvestmentNotFound for unknown ID", func(t *testing.T) {
		_, err := repo.FetchInvestment(ctx, 999)
		if !errors.Is(err, apperrors.ErrInvestmentNotFound) {
			t.Errorf("Expected ErrInvestmentNotFound, got %v", err)
		}
	})
}

// TestRecordSale verifies that sales append history rows and that the fetch
// query derives cumulative quantity, average price and latest sale date
// from the full history.
//
// WHY: the history is append-only and the lot's aggregated view is never
// stored. If the aggregation drifted from the history the remaining-shares
// arithmetic and the realized gain/loss inputs would silently go wrong.
func TestRecordSale(t *testing.T) {
	ctx := context.Background()

	insertLot := func(t *testing.T, repo *repository.InvestmentRepository) int64 {
		t.Helper()
		id, err := repo.InsertInvestment(ctx, model.Investment{
			Ticker:           "VWCE.DE",
			PurchaseDate:     time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
			InitialAmount:    10,
			InitialUnitPrice: 10.0,
			TransactionFee:   1.0,
			SoldShareStatus:  model.StatusUnsold,
		})
		if err != nil {
			t.Fatalf("Failed to insert investment: %v", err)
		}
		return id
	}

	t.Run("partial sale appends row and updates aggregates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInvestmentRepository(db)
		id := insertLot(t, repo)

		err := repo.RecordSale(ctx, id, model.StatusPartiallySold, 6, "2026-01-15", 4, 12.0)
		if err != nil {
			t.Fatalf("Failed to record sale: %v", err)
		}

		testutil.AssertRowCount(t, db, "sale_history", 2)

		stored, err := repo.FetchInvestment(ctx, id)
		if err != nil {
			t.Fatalf("Failed to fetch investment: %v", err)
		}

		if stored.SoldShareStatus != model.StatusPartiallySold {
			t.Errorf("Expected status %q, got %q", model.StatusPartiallySold, stored.SoldShareStatus)
		}
		if stored.RemainingShares != 6 {
			t.Errorf("Expected 6 remaining shares, got %d", stored.RemainingShares)
		}
		if stored.QuantitySold != 4 {
			t.Errorf("Expected cumulative quantity sold 4, got %d", stored.QuantitySold)
		}
		// Average over the seed row (price 0) and the sale (price 12).
		if stored.SalePrice != 6.0 {
			t.Errorf("Expected average sale price 6.0, got %v", stored.SalePrice)
		}
		if stored.LastSaleDate == nil {
			t.Fatal("Expected a last sale date")
		}
		want := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
		if !stored.LastSaleDate.Equal(want) {
			t.Errorf("Expected last sale date %v, got %v", want, stored.LastSaleDate)
		}
	})

	t.Run("aggregates accumulate across multiple sales", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInvestmentRepository(db)
		id := insertLot(t, repo)

		if err := repo.RecordSale(ctx, id, model.StatusPartiallySold, 6, "2026-01-15", 4, 12.0); err != nil {
			t.Fatalf("Failed to record first sale: %v", err)
		}
		if err := repo.RecordSale(ctx, id, model.StatusPartiallySold, 3, "2026-02-20", 3, 18.0); err != nil {
			t.Fatalf("Failed to record second sale: %v", err)
		}

		testutil.AssertRowCount(t, db, "sale_history", 3)

		stored, err := repo.FetchInvestment(ctx, id)
		if err != nil {
			t.Fatalf("Failed to fetch investment: %v", err)
		}

		if stored.QuantitySold != 7 {
			t.Errorf("Expected cumulative quantity sold 7, got %d", stored.QuantitySold)
		}
		if stored.RemainingShares != 3 {
			t.Errorf("Expected 3 remaining shares, got %d", stored.RemainingShares)
		}
		// ROUND(AVG(0, 12, 18), 2)
		if stored.SalePrice != 10.0 {
			t.Errorf("Expected average sale price 10.0, got %v", stored.SalePrice)
		}
		want := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)
		if stored.LastSaleDate == nil || !stored.LastSaleDate.Equal(want) {
			t.Errorf("Expected last sale date %v, got %v", want, stored.LastSaleDate)
		}
	})

	t.Run("returns ErrInvestmentNotFound for unknown ID", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInvestmentRepository(db)

		err := repo.RecordSale(ctx, 999, model.StatusSold, 0, "2026-01-15", 10, 12.0)
		if !errors.Is(err, apperrors.ErrInvestmentNotFound) {
			t.Errorf("Expected ErrInvestmentNotFound, got %v", err)
		}
		testutil.AssertRowCount(t, db, "sale_history", 0)
	})
}

// TestFetchSaleHistory verifies the full history comes back oldest first
// with the seed row included.
func TestFetchSaleHistory(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewInvestmentRepository(db)

	id, err := repo.InsertInvestment(ctx, model.Investment{
		Ticker:           "VWCE.DE",
		PurchaseDate:     time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
		InitialAmount:    10,
		InitialUnitPrice: 10.0,
		SoldShareStatus:  model.StatusUnsold,
	})
	if err != nil {
		t.Fatalf("Failed to insert investment: %v", err)
	}
	if err := repo.RecordSale(ctx, id, model.StatusPartiallySold, 6, "2026-01-15", 4, 12.0); err != nil {
		t.Fatalf("Failed to record sale: %v", err)
	}

	history, err := repo.FetchSaleHistory(ctx, id)
	if err != nil {
		t.Fatalf("Failed to fetch sale history: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("Expected 2 history rows, got %d", len(history))
	}

	seed := history[0]
	if seed.SaleDate != nil {
		t.Errorf("Expected seed row to have no sale date, got %v", seed.SaleDate)
	}
	if seed.QuantitySold != 0 || seed.SalePrice != 0 {
		t.Errorf("Expected zero-valued seed row, got qty=%d price=%v", seed.QuantitySold, seed.SalePrice)
	}
	if seed.RemainingShares != 10 {
		t.Errorf("Expected seed remaining shares 10, got %d", seed.RemainingShares)
	}

	sale := history[1]
	if sale.QuantitySold != 4 || sale.SalePrice != 12.0 || sale.RemainingShares != 6 {
		t.Errorf("Unexpected sale row: %+v", sale)
	}
}

// TestDistinctTickers verifies deduplication and ordering.
func TestDistinctTickers(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewInvestmentRepository(db)

	for _, ticker := range []string{"VWCE.DE", "IWDA.AS", "VWCE.DE"} {
		_, err := repo.InsertInvestment(ctx, model.Investment{
			Ticker:           ticker,
			PurchaseDate:     time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
			InitialAmount:    10,
			InitialUnitPrice: 10.0,
			SoldShareStatus:  model.StatusUnsold,
		})
		if err != nil {
			t.Fatalf("Failed to insert investment: %v", err)
		}
	}

	tickers, err := repo.DistinctTickers(ctx)
	if err != nil {
		t.Fatalf("Failed to list tickers: %v", err)
	}

	if len(tickers) != 2 {
		t.Fatalf("Expected 2 distinct tickers, got %d: %v", len(tickers), tickers)
	}
	if tickers[0] != "IWDA.AS" || tickers[1] != "VWCE.DE" {
		t.Errorf("Expected [IWDA.AS VWCE.DE], got %v", tickers)
	}
}

// TestTruncateAll verifies the reset deletes everything and restarts the ID
// sequence so the next insert gets ID 1 again.
func TestTruncateAll(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewInvestmentRepository(db)

	lot := model.Investment{
		Ticker:           "VWCE.DE",
		PurchaseDate:     time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
		InitialAmount:    10,
		InitialUnitPrice: 10.0,
		SoldShareStatus:  model.StatusUnsold,
	}

	id, err := repo.InsertInvestment(ctx, lot)
	if err != nil {
		t.Fatalf("Failed to insert investment: %v", err)
	}
	if _, err := repo.InsertInvestment(ctx, lot); err != nil {
		t.Fatalf("Failed to insert second investment: %v", err)
	}
	if err := repo.RecordSale(ctx, id, model.StatusPartiallySold, 6, "2026-01-15", 4, 12.0); err != nil {
		t.Fatalf("Failed to record sale: %v", err)
	}

	if err := repo.TruncateAll(ctx); err != nil {
		t.Fatalf("Failed to truncate: %v", err)
	}

	testutil.AssertRowCount(t, db, "investment", 0)
	testutil.AssertRowCount(t, db, "sale_history", 0)

	newID, err := repo.InsertInvestment(ctx, lot)
	if err != nil {
		t.Fatalf("Failed to insert after truncate: %v", err)
	}
	if newID != 1 {
		t.Errorf("Expected IDs to restart at 1 after truncate, got %d", newID)
	}
}
