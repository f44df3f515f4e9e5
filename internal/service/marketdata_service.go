package service

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/apperrors"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/yahoo"
)

// UnknownAssetName is returned when a symbol's display name cannot be
// resolved. Name lookups degrade to this sentinel instead of failing;
// price lookups never do.
const UnknownAssetName = "Unknown Asset"

// Quote is a cached market snapshot for one symbol: the latest close price
// rounded to 2 decimals and the asset's display name.
type Quote struct {
	Price     float64
	AssetName string
	FetchedAt time.Time
}

// MarketDataService wraps the Yahoo client with ticker validation and a
// TTL-bounded in-memory quote cache. Historical close lookups are not
// cached; they are already date-addressed and idempotent.
type MarketDataService struct {
	client yahoo.Client
	ttl    time.Duration

	mu     sync.RWMutex
	quotes map[string]Quote
}

// NewMarketDataService creates a MarketDataService with the provided client.
// cacheTTL bounds how long a cached quote may be served before a fresh fetch.
func NewMarketDataService(client yahoo.Client, cacheTTL time.Duration) *MarketDataService {
	return &MarketDataService{
		client: client,
		ttl:    cacheTTL,
		quotes: make(map[string]Quote),
	}
}

// Quote returns the latest close price and display name for a symbol,
// serving from cache when the entry is still within its TTL. An empty or
// blank symbol fails fast before any network call.
func (s *MarketDataService) Quote(symbol string) (Quote, error) {
	if err := validateSymbol(symbol); err != nil {
		return Quote{}, err
	}

	s.mu.RLock()
	cached, ok := s.quotes[symbol]
	s.mu.RUnlock()
	if ok && time.Since(cached.FetchedAt) < s.ttl {
		return cached, nil
	}

	return s.RefreshQuote(symbol)
}

// RefreshQuote fetches a fresh quote for the symbol, bypassing the cache,
// and stores the result. Used by the scheduled refresh job and as the cache
// miss path of Quote.
func (s *MarketDataService) RefreshQuote(symbol string) (Quote, error) {
	if err := validateSymbol(symbol); err != nil {
		return Quote{}, err
	}

	raw, err := s.client.QueryYahooFiveDaySymbol(symbol)
	if err != nil {
		return Quote{}, fmt.Errorf("quote for %s: %w", symbol, err)
	}

	chart, err := s.client.ParseChart(raw)
	if err != nil {
		return Quote{}, fmt.Errorf("quote for %s: %w", symbol, err)
	}

	price, ok := chart.LatestClose()
	if !ok {
		return Quote{}, fmt.Errorf("quote for %s: %w", symbol, apperrors.ErrPriceNotFound)
	}

	quote := Quote{
		Price:     math.Round(price*100) / 100,
		AssetName: displayName(chart),
		FetchedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.quotes[symbol] = quote
	s.mu.Unlock()

	return quote, nil
}

// HistoricalClose returns the close price for the trading session covering
// [date, date+1day), rounded to 2 decimals. A session without data is a
// failure; no default price is substituted.
func (s *MarketDataService) HistoricalClose(symbol string, date time.Time) (float64, error) {
	if err := validateSymbol(symbol); err != nil {
		return 0, err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	raw, err := s.client.QueryYahooSymbolByDateRange(symbol, day, day.AddDate(0, 0, 1))
	if err != nil {
		return 0, fmt.Errorf("historical close for %s on %s: %w", symbol, day.Format("2006-01-02"), err)
	}

	chart, err := s.client.ParseChart(raw)
	if err != nil {
		return 0, fmt.Errorf("historical close for %s on %s: %w", symbol, day.Format("2006-01-02"), err)
	}

	indicator, ok := chart.GetIndicatorForDate(day)
	if !ok {
		return 0, fmt.Errorf("historical close for %s on %s: %w", symbol, day.Format("2006-01-02"), apperrors.ErrPriceNotFound)
	}

	return math.Round(indicator.PriceClose*100) / 100, nil
}

// displayName picks the best available name from chart metadata, degrading
// to the UnknownAssetName sentinel rather than failing.
func displayName(chart yahoo.PriceChart) string {
	if chart.LongName != "" {
		return chart.LongName
	}
	if chart.Shortname != "" {
		return chart.Shortname
	}
	return UnknownAssetName
}

func validateSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return apperrors.ErrInvalidTicker
	}
	return nil
}
