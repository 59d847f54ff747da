// Package usecase prices portfolio holdings with market data.
package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	market "portfolio_backend/internal/feature/marketdata/domain/entity"
	portfolio "portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/valuation/domain/entity"
)

// maxInFlight bounds concurrent market-data calls per request.
const maxInFlight = 8

var hundred = decimal.NewFromInt(100)

// MarketData is the subset of the market-data usecase valuation reads from.
// Implementations never return errors; a nil result means "unavailable".
type MarketData interface {
	GetQuote(ctx context.Context, symbol string) *market.Quote
	GetOverview(ctx context.Context, symbol string) *market.Overview
	GetHistory(ctx context.Context, symbol string, size market.OutputSize) market.TimeSeries
}

// HoldingLister returns the holdings of one of the user's portfolios.
type HoldingLister interface {
	ListHoldings(ctx context.Context, userID uint, portfolioID uuid.UUID) ([]portfolio.Holding, error)
}

// ValuationUsecase computes valuations and value history.
type ValuationUsecase struct {
	market   MarketData
	holdings HoldingLister
	now      func() time.Time
}

// NewValuationUsecase creates a ValuationUsecase.
func NewValuationUsecase(market MarketData, holdings HoldingLister) *ValuationUsecase {
	return &ValuationUsecase{market: market, holdings: holdings, now: time.Now}
}

// Valuate prices every holding of the portfolio and totals them.
func (u *ValuationUsecase) Valuate(ctx context.Context, userID uint, portfolioID uuid.UUID) (*entity.Valuation, error) {
	holdings, err := u.holdings.ListHoldings(ctx, userID, portfolioID)
	if err != nil {
		return nil, err
	}
	priced, err := u.EnrichHoldings(ctx, holdings)
	if err != nil {
		return nil, err
	}
	return &entity.Valuation{Holdings: priced, Summary: Summarize(priced)}, nil
}

type marketSnapshot struct {
	quote    *market.Quote
	overview *market.Overview
}

// EnrichHoldings fetches quote and overview once per distinct symbol, with at most
// maxInFlight calls outstanding, and joins them onto holdings in order.
func (u *ValuationUsecase) EnrichHoldings(ctx context.Context, holdings []portfolio.Holding) ([]entity.PricedHolding, error) {
	snapshots := make(map[string]*marketSnapshot)
	for _, h := range holdings {
		snapshots[h.Symbol] = &marketSnapshot{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	for symbol, snap := range snapshots {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap.quote = u.market.GetQuote(gctx, symbol)
			return nil
		})
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap.overview = u.market.GetOverview(gctx, symbol)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]entity.PricedHolding, 0, len(holdings))
	for _, h := range holdings {
		snap := snapshots[h.Symbol]
		out = append(out, price(h, snap.quote, snap.overview))
	}
	return out, nil
}

func price(h portfolio.Holding, q *market.Quote, o *market.Overview) entity.PricedHolding {
	p := entity.PricedHolding{
		Holding:        h,
		Cost:           h.Cost(),
		AnnualDividend: decimal.Zero,
	}
	if q != nil {
		value := q.Price.Mul(h.Shares)
		gain := value.Sub(p.Cost)
		p.CurrentPrice = valid(q.Price)
		p.Change = valid(q.Change)
		p.ChangePercent = valid(q.ChangePercent)
		p.Value = valid(value)
		p.Gain = valid(gain)
		p.GainPercent = valid(percentOf(gain, p.Cost))
	}
	if o != nil {
		p.DividendYield = o.DividendYield
		p.DividendPerShare = o.DividendPerShare
		if o.DividendPerShare.Valid {
			p.AnnualDividend = o.DividendPerShare.Decimal.Mul(h.Shares)
		}
	}
	return p
}

// Summarize totals priced holdings. Unpriced holdings contribute cost but no value.
func Summarize(holdings []entity.PricedHolding) entity.Summary {
	s := entity.Summary{
		TotalCost:       decimal.Zero,
		TotalValue:      decimal.Zero,
		AnnualDividends: decimal.Zero,
	}
	for _, h := range holdings {
		s.TotalCost = s.TotalCost.Add(h.Cost)
		if h.Value.Valid {
			s.TotalValue = s.TotalValue.Add(h.Value.Decimal)
		}
		s.AnnualDividends = s.AnnualDividends.Add(h.AnnualDividend)
	}
	s.TotalGain = s.TotalValue.Sub(s.TotalCost)
	s.TotalGainPercent = percentOf(s.TotalGain, s.TotalCost)
	return s
}

// History returns the daily portfolio value within r, oldest first.
// A holding whose history is unavailable is left out of every date.
func (u *ValuationUsecase) History(ctx context.Context, userID uint, portfolioID uuid.UUID, r entity.Range) ([]entity.HistoryPoint, error) {
	holdings, err := u.holdings.ListHoldings(ctx, userID, portfolioID)
	if err != nil {
		return nil, err
	}

	bySymbol := make(map[string]*market.TimeSeries)
	for _, h := range holdings {
		bySymbol[h.Symbol] = new(market.TimeSeries)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	for symbol, slot := range bySymbol {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			*slot = u.market.GetHistory(gctx, symbol, market.OutputSizeFull)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series := make([]market.TimeSeries, len(holdings))
	for i, h := range holdings {
		series[i] = *bySymbol[h.Symbol]
	}
	return aggregate(holdings, series, r, u.now()), nil
}

func aggregate(holdings []portfolio.Holding, series []market.TimeSeries, r entity.Range, now time.Time) []entity.HistoryPoint {
	from := ""
	if start, ok := r.Start(now); ok {
		from = start.Format(market.DateLayout)
	}

	byDate := make(map[string]*entity.HistoryPoint)
	for i, h := range holdings {
		cost := h.Cost()
		for date, bar := range series[i] {
			if date < from {
				continue
			}
			p, ok := byDate[date]
			if !ok {
				p = &entity.HistoryPoint{Date: date, Value: decimal.Zero, Cost: decimal.Zero}
				byDate[date] = p
			}
			p.Value = p.Value.Add(bar.Close.Mul(h.Shares))
			p.Cost = p.Cost.Add(cost)
		}
	}

	out := make([]entity.HistoryPoint, 0, len(byDate))
	for _, p := range byDate {
		p.Gain = p.Value.Sub(p.Cost)
		p.GainPercent = percentOf(p.Gain, p.Cost)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// percentOf returns part/whole×100 rounded to 4 places, or 0 when whole is 0.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(4)
}

func valid(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
