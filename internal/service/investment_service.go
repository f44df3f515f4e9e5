package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api/request"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/apperrors"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/model"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/repository"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/tax"
)

// enrichConcurrency bounds how many lots are enriched with market data at
// once when listing the portfolio.
const enrichConcurrency = 4

// InvestmentService orchestrates the repository, the market-data collaborator
// and the tax engine. Tax figures are recomputed on every read; nothing
// derived is ever persisted.
type InvestmentService struct {
	investmentRepo *repository.InvestmentRepository
	market         *MarketDataService
	now            func() time.Time
}

// NewInvestmentService creates a new InvestmentService. The clock is injected
// so the deemed-disposal trigger can be tested against a fixed date.
func NewInvestmentService(investmentRepo *repository.InvestmentRepository, market *MarketDataService, now func() time.Time) *InvestmentService {
	if now == nil {
		now = time.Now
	}
	return &InvestmentService{
		investmentRepo: investmentRepo,
		market:         market,
		now:            now,
	}
}

// CreateInvestment validates and stores a new purchase lot together with its
// zero-valued seed history row, and returns the stored lot.
func (s *InvestmentService) CreateInvestment(ctx context.Context, req request.CreateInvestmentRequest) (model.Investment, error) {
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return model.Investment{}, fmt.Errorf("invalid purchase date: %w", err)
	}

	inv := model.Investment{
		Ticker:           req.Ticker,
		PurchaseDate:     purchaseDate.UTC(),
		InitialAmount:    req.InitialAmount,
		InitialUnitPrice: req.InitialUnitPrice,
		TransactionFee:   req.TransactionFee,
		SoldShareStatus:  model.StatusUnsold,
		RemainingShares:  req.InitialAmount,
	}

	id, err := s.investmentRepo.InsertInvestment(ctx, inv)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to create investment: %w", err)
	}

	return s.investmentRepo.FetchInvestment(ctx, id)
}

// GetInvestment returns one lot enriched with market data and freshly
// computed tax figures.
func (s *InvestmentService) GetInvestment(ctx context.Context, id int64) (model.InvestmentDetail, error) {
	inv, err := s.investmentRepo.FetchInvestment(ctx, id)
	if err != nil {
		return model.InvestmentDetail{}, err
	}

	return s.enrich(inv)
}

// ListInvestments returns every lot enriched with market data and tax
// figures. Enrichment fans out with bounded concurrency; if any single lot
// fails the whole listing fails, matching the no-partial-results rule.
func (s *InvestmentService) ListInvestments(ctx context.Context) ([]model.InvestmentDetail, error) {
	investments, err := s.investmentRepo.FetchInvestments(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]model.InvestmentDetail, len(investments))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range investments {
		g.Go(func() error {
			detail, err := s.enrich(investments[i])
			if err != nil {
				return err
			}
			details[i] = detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return details, nil
}

// RecordSale records a full or partial sale against a lot: it derives the
// sold quantity and remaining shares, guards against overselling, updates
// the lot status and appends one history row. Returns the updated lot.
func (s *InvestmentService) RecordSale(ctx context.Context, id int64, req request.RecordSaleRequest) (model.Investment, error) {
	inv, err := s.investmentRepo.FetchInvestment(ctx, id)
	if err != nil {
		return model.Investment{}, err
	}

	if inv.SoldShareStatus == model.StatusSold {
		return model.Investment{}, apperrors.ErrAlreadySold
	}

	var quantitySold, remainingShares int64
	switch req.SoldShareStatus {
	case model.StatusSold:
		// A full sale disposes of everything still held.
		quantitySold = inv.RemainingShares
		remainingShares = 0
	case model.StatusPartiallySold:
		quantitySold = req.QuantitySold
		if quantitySold > inv.RemainingShares {
			return model.Investment{}, apperrors.ErrInsufficientShares
		}
		remainingShares = inv.RemainingShares - quantitySold
	default:
		return model.Investment{}, fmt.Errorf("invalid sold share status: %s", req.SoldShareStatus)
	}

	err = s.investmentRepo.RecordSale(ctx, id, req.SoldShareStatus, remainingShares, req.SaleDate, quantitySold, req.SalePrice)
	if err != nil {
		return model.Investment{}, err
	}

	return s.investmentRepo.FetchInvestment(ctx, id)
}

// GetSaleHistory returns the full append-only sale history of one lot,
// including the zero-valued seed row.
func (s *InvestmentService) GetSaleHistory(ctx context.Context, id int64) ([]model.SaleEvent, error) {
	if _, err := s.investmentRepo.FetchInvestment(ctx, id); err != nil {
		return nil, err
	}

	return s.investmentRepo.FetchSaleHistory(ctx, id)
}

// Reset deletes every investment and sale-history row and resets the ID
// counters.
func (s *InvestmentService) Reset(ctx context.Context) error {
	return s.investmentRepo.TruncateAll(ctx)
}

// enrich attaches market data and recomputed tax figures to one lot. Either
// every derived field computes or the lot fails as a whole.
func (s *InvestmentService) enrich(inv model.Investment) (model.InvestmentDetail, error) {
	quote, err := s.market.Quote(inv.Ticker)
	if err != nil {
		return model.InvestmentDetail{}, err
	}

	lookup := func(date time.Time) (float64, error) {
		return s.market.HistoricalClose(inv.Ticker, date)
	}

	now := s.now().UTC()
	asOf := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	taxResult, err := tax.Compute(inv, quote.Price, asOf, lookup)
	if err != nil {
		return model.InvestmentDetail{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeTax, err)
	}

	return model.InvestmentDetail{
		Investment:   inv,
		AssetName:    quote.AssetName,
		CurrentPrice: quote.Price,
		Tax:          taxResult,
	}, nil
}
