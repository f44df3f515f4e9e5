package jobs_test

import (
	"errors"
	"testing"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/jobs"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/repository"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/testutil"
)

// TestQuoteRefreshJob verifies the job warms the cache for every distinct
// ticker and that subsequent interactive reads hit the cache.
func TestQuoteRefreshJob(t *testing.T) {
	t.Run("refreshes every distinct ticker once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInvestmentRepository(db)
		mock := testutil.NewMockYahooClient()
		market := testutil.NewTestMarketDataService(t, mock)

		testutil.CreateInvestment(t, db, testutil.RecentLot("VWCE.DE"))
		testutil.CreateInvestment(t, db, testutil.RecentLot("IWDA.AS"))
		testutil.CreateInvestment(t, db, testutil.RecentLot("VWCE.DE"))

		job := jobs.NewQuoteRefreshJob(repo, market)
		job.Run()

		if mock.QueryCount != 2 {
			t.Errorf("Expected 2 upstream queries, got %d", mock.QueryCount)
		}

		// Interactive reads now come out of the warmed cache.
		if _, err := market.Quote("VWCE.DE"); err != nil {
			t.Fatalf("Failed to get quote: %v", err)
		}
		if mock.QueryCount != 2 {
			t.Errorf("Expected warmed cache to serve reads, got %d queries", mock.QueryCount)
		}
	})

	t.Run("a failing ticker does not stop the batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInvestmentRepository(db)
		mock := testutil.NewMockYahooClient().WithError(errors.New("yahoo unreachable"))
		market := testutil.NewTestMarketDataService(t, mock)

		testutil.CreateInvestment(t, db, testutil.RecentLot("VWCE.DE"))
		testutil.CreateInvestment(t, db, testutil.RecentLot("IWDA.AS"))

		job := jobs.NewQuoteRefreshJob(repo, market)
		job.Run()

		if mock.QueryCount != 2 {
			t.Errorf("Expected both tickers to be attempted, got %d queries", mock.QueryCount)
		}
	})

	t.Run("empty portfolio is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInvestmentRepository(db)
		mock := testutil.NewMockYahooClient()
		market := testutil.NewTestMarketDataService(t, mock)

		job := jobs.NewQuoteRefreshJob(repo, market)
		job.Run()

		if mock.QueryCount != 0 {
			t.Errorf("Expected no upstream queries, got %d", mock.QueryCount)
		}
	})
}
