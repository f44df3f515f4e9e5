package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/model"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/repository"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/service"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/yahoo"
)

// FixedNow is the deterministic "current date" used by test services:
// 2026-08-28 UTC. Lots purchased before 2018-08-28 plus a few days have
// their deemed disposal triggered relative to it.
var FixedNow = time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)

// FixedClock returns FixedNow; inject it wherever a service takes a clock.
func FixedClock() time.Time {
	return FixedNow
}

// NewTestMarketDataService creates a MarketDataService over the given mock
// client with a TTL long enough that tests never hit an expiry mid-run.
func NewTestMarketDataService(t *testing.T, client yahoo.Client) *service.MarketDataService {
	t.Helper()

	return service.NewMarketDataService(client, time.Hour)
}

// NewTestInvestmentService creates an InvestmentService with the default
// mock Yahoo client and the fixed test clock.
func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()

	return NewTestInvestmentServiceWithMockYahoo(t, db, NewMockYahooClient())
}

// NewTestInvestmentServiceWithMockYahoo creates an InvestmentService backed
// by the given mock Yahoo client. Useful for driving specific price or
// failure scenarios.
func NewTestInvestmentServiceWithMockYahoo(t *testing.T, db *sql.DB, mockYahoo yahoo.Client) *service.InvestmentService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db)
	market := NewTestMarketDataService(t, mockYahoo)

	return service.NewInvestmentService(investmentRepo, market, FixedClock)
}

// NewTestSystemService creates a SystemService over the test database.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// CreateInvestment inserts a lot (and its seed history row) directly through
// the repository and returns the stored row.
func CreateInvestment(t *testing.T, db *sql.DB, inv model.Investment) model.Investment {
	t.Helper()

	repo := repository.NewInvestmentRepository(db)

	if inv.SoldShareStatus == "" {
		inv.SoldShareStatus = model.StatusUnsold
	}

	id, err := repo.InsertInvestment(context.Background(), inv)
	if err != nil {
		t.Fatalf("Failed to insert test investment: %v", err)
	}

	stored, err := repo.FetchInvestment(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to fetch test investment: %v", err)
	}

	return stored
}

// RecentLot returns a lot purchased well inside the 8-year window, so its
// deemed disposal has not triggered at FixedNow.
func RecentLot(ticker string) model.Investment {
	return model.Investment{
		Ticker:           ticker,
		PurchaseDate:     time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
		InitialAmount:    10,
		InitialUnitPrice: 10.0,
		TransactionFee:   1.0,
	}
}

// AgedLot returns a lot purchased in 2010, so its deemed disposal has long
// triggered at FixedNow.
func AgedLot(ticker string) model.Investment {
	return model.Investment{
		Ticker:           ticker,
		PurchaseDate:     time.Date(2010, time.January, 4, 0, 0, 0, 0, time.UTC),
		InitialAmount:    100,
		InitialUnitPrice: 10.0,
		TransactionFee:   5.0,
	}
}
