// Package jobs contains background jobs scheduled with cron. Jobs log their
// outcome and never panic the scheduler.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/repository"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/service"
)

// QuoteRefreshJob warms the market-data quote cache for every ticker held in
// the portfolio, so interactive reads rarely pay for a cold Yahoo round trip.
// It implements cron.Job.
type QuoteRefreshJob struct {
	investmentRepo *repository.InvestmentRepository
	market         *service.MarketDataService
	timeout        time.Duration
}

// NewQuoteRefreshJob creates a QuoteRefreshJob over the given repository and
// market-data service.
func NewQuoteRefreshJob(investmentRepo *repository.InvestmentRepository, market *service.MarketDataService) *QuoteRefreshJob {
	return &QuoteRefreshJob{
		investmentRepo: investmentRepo,
		market:         market,
		timeout:        2 * time.Minute,
	}
}

// Run refreshes the quote of every distinct ticker. A failing ticker is
// logged and skipped; the rest of the batch still refreshes.
func (j *QuoteRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	tickers, err := j.investmentRepo.DistinctTickers(ctx)
	if err != nil {
		log.Printf("quote refresh: failed to list tickers: %v", err)
		return
	}

	refreshed := 0
	for _, ticker := range tickers {
		if _, err := j.market.RefreshQuote(ticker); err != nil {
			log.Printf("quote refresh: %s: %v", ticker, err)
			continue
		}
		refreshed++
	}

	log.Printf("quote refresh: refreshed %d/%d tickers", refreshed, len(tickers))
}
