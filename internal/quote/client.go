// Package quote fetches quotes, daily history and key statistics from a
// Yahoo Finance compatible API.
package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guttosm/smartinvest/config"
	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/upstream"
)

const provider = "yahoo"

// statisticsModules are the quoteSummary modules the key statistics are read from.
const statisticsModules = "defaultKeyStatistics,financialData,summaryDetail"

// SymbolError reports why one symbol of a batch could not be quoted.
type SymbolError struct {
	Symbol string
	Err    error
}

// Client is the market-data contract used by the analysis service.
type Client interface {
	// Quote returns the current quote of one symbol. Unknown symbols yield upstream.ErrInvalidSymbol.
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	// Quotes fetches many symbols in one call. Quotes come back in request order;
	// symbols the provider did not return are listed in the SymbolError slice.
	// The error is non-nil only when the whole call failed.
	Quotes(ctx context.Context, symbols []string) ([]models.Quote, []SymbolError, error)
	// History returns daily bars for a Yahoo range such as "1mo" or "1y".
	History(ctx context.Context, symbol, rng string) ([]models.PriceBar, error)
	// Statistics returns the key statistics of one symbol.
	Statistics(ctx context.Context, symbol string) (*models.FundamentalMetrics, error)
}

type yahooClient struct {
	baseURL string
	http    *http.Client
	caller  *upstream.Caller
	now     func() time.Time
}

// NewClient builds a Yahoo Finance backed Client.
//
// Parameters:
//   - cfg: quote configuration (base URL).
//   - caller: resilience policy applied to every request.
//   - httpClient: transport; nil uses http.DefaultClient.
func NewClient(cfg config.QuoteConfig, caller *upstream.Caller, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &yahooClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		caller:  caller,
		now:     time.Now,
	}
}

func (c *yahooClient) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	quotes, missing, err := c.Quotes(ctx, []string{symbol})
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, missing[0].Err
	}
	return &quotes[0], nil
}

func (c *yahooClient) Quotes(ctx context.Context, symbols []string) ([]models.Quote, []SymbolError, error) {
	if len(symbols) == 0 {
		return []models.Quote{}, nil, nil
	}

	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	endpoint := c.baseURL + "/v7/finance/quote?" + q.Encode()

	resp, err := upstream.Call(ctx, c.caller, "quote", func(ctx context.Context) (*yfQuoteResponse, error) {
		var out yfQuoteResponse
		if err := upstream.GetJSON(ctx, c.http, upstream.Request{Provider: provider, Op: "quote", URL: endpoint}, &out); err != nil {
			return nil, err
		}
		if e := out.QuoteResponse.Error; e != nil {
			return nil, upstream.NewError(provider, "quote", upstream.ErrUnavailable, 0, fmt.Errorf("%s: %s", e.Code, e.Description))
		}
		return &out, nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("fetch quotes: %w", err)
	}

	bySymbol := make(map[string]yfQuoteResult, len(resp.QuoteResponse.Result))
	for _, r := range resp.QuoteResponse.Result {
		bySymbol[strings.ToUpper(r.Symbol)] = r
	}

	quotes := make([]models.Quote, 0, len(symbols))
	var missing []SymbolError
	for _, sym := range symbols {
		r, ok := bySymbol[strings.ToUpper(sym)]
		if !ok || r.RegularMarketPrice == nil {
			missing = append(missing, SymbolError{
				Symbol: sym,
				Err:    upstream.NewError(provider, "quote", upstream.ErrInvalidSymbol, 0, fmt.Errorf("no quote for %s", sym)),
			})
			continue
		}
		quotes = append(quotes, c.toQuote(sym, r))
	}
	return quotes, missing, nil
}

func (c *yahooClient) toQuote(symbol string, r yfQuoteResult) models.Quote {
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}
	if name == "" {
		name = symbol
	}
	ts := c.now().UTC()
	if r.RegularMarketTime > 0 {
		ts = time.Unix(r.RegularMarketTime, 0).UTC()
	}
	return models.Quote{
		Symbol:        strings.ToUpper(symbol),
		Name:          name,
		Price:         *r.RegularMarketPrice,
		Change:        r.RegularMarketChange,
		ChangePercent: r.RegularMarketChangePercent,
		Volume:        r.RegularMarketVolume,
		MarketCap:     r.MarketCap,
		Timestamp:     ts,
	}
}

func (c *yahooClient) History(ctx context.Context, symbol, rng string) ([]models.PriceBar, error) {
	if rng == "" {
		rng = "1y"
	}
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", "1d")
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), q.Encode())

	result, err := upstream.Call(ctx, c.caller, "history", func(ctx context.Context) (*yfChartResult, error) {
		var out yfChartResponse
		if err := upstream.GetJSON(ctx, c.http, upstream.Request{Provider: provider, Op: "history", URL: endpoint}, &out); err != nil {
			return nil, err
		}
		if e := out.Chart.Error; e != nil {
			return nil, yahooBodyError("history", e)
		}
		if len(out.Chart.Result) == 0 {
			return nil, upstream.NewError(provider, "history", upstream.ErrInvalidSymbol, 0, fmt.Errorf("no chart for %s", symbol))
		}
		return &out.Chart.Result[0], nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return parseBars(*result), nil
}

func (c *yahooClient) Statistics(ctx context.Context, symbol string) (*models.FundamentalMetrics, error) {
	q := url.Values{}
	q.Set("modules", statisticsModules)
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(symbol), q.Encode())

	result, err := upstream.Call(ctx, c.caller, "statistics", func(ctx context.Context) (*yfQuoteSummaryResult, error) {
		var out yfQuoteSummaryResponse
		if err := upstream.GetJSON(ctx, c.http, upstream.Request{Provider: provider, Op: "statistics", URL: endpoint}, &out); err != nil {
			return nil, err
		}
		if e := out.QuoteSummary.Error; e != nil {
			return nil, yahooBodyError("statistics", e)
		}
		if len(out.QuoteSummary.Result) == 0 {
			return nil, upstream.NewError(provider, "statistics", upstream.ErrInvalidSymbol, 0, fmt.Errorf("no statistics for %s", symbol))
		}
		return &out.QuoteSummary.Result[0], nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch statistics: %w", err)
	}
	return toMetrics(*result), nil
}

func yahooBodyError(op string, e *yfError) error {
	kind := upstream.ErrUnavailable
	if strings.EqualFold(e.Code, "Not Found") {
		kind = upstream.ErrInvalidSymbol
	}
	return upstream.NewError(provider, op, kind, 0, errors.New(e.Code+": "+e.Description))
}

// parseBars converts chart arrays to bars, skipping sessions without a close.
func parseBars(r yfChartResult) []models.PriceBar {
	if len(r.Indicators.Quote) == 0 {
		return []models.PriceBar{}
	}
	q := r.Indicators.Quote[0]

	bars := make([]models.PriceBar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		b := models.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *q.Close[i],
		}
		if i < len(q.Open) && q.Open[i] != nil {
			b.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			b.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			b.Low = *q.Low[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			b.Volume = *q.Volume[i]
		}
		bars = append(bars, b)
	}
	return bars
}

func toMetrics(r yfQuoteSummaryResult) *models.FundamentalMetrics {
	var (
		ks = r.DefaultKeyStatistics
		fd = r.FinancialData
		sd = r.SummaryDetail
	)
	if ks == nil {
		ks = &yfDefaultKeyStatistics{}
	}
	if fd == nil {
		fd = &yfFinancialData{}
	}
	if sd == nil {
		sd = &yfSummaryDetail{}
	}
	return &models.FundamentalMetrics{
		MarketCap:           sd.MarketCap.Raw,
		EnterpriseValue:     ks.EnterpriseValue.Raw,
		TrailingPE:          sd.TrailingPE.Raw,
		ForwardPE:           first(ks.ForwardPE.Raw, sd.ForwardPE.Raw),
		PriceToBook:         ks.PriceToBook.Raw,
		PriceToSales:        sd.PriceToSalesTrailing12Months.Raw,
		EnterpriseToRevenue: ks.EnterpriseToRevenue.Raw,
		EnterpriseToEbitda:  ks.EnterpriseToEbitda.Raw,
		ProfitMargins:       first(fd.ProfitMargins.Raw, ks.ProfitMargins.Raw),
		OperatingMargins:    fd.OperatingMargins.Raw,
		ReturnOnAssets:      fd.ReturnOnAssets.Raw,
		ReturnOnEquity:      fd.ReturnOnEquity.Raw,
		RevenueGrowth:       fd.RevenueGrowth.Raw,
		EarningsGrowth:      fd.EarningsGrowth.Raw,
		DebtToEquity:        fd.DebtToEquity.Raw,
		CurrentRatio:        fd.CurrentRatio.Raw,
		QuickRatio:          fd.QuickRatio.Raw,
		DividendYield:       sd.DividendYield.Raw,
		PayoutRatio:         sd.PayoutRatio.Raw,
		Beta:                first(ks.Beta.Raw, sd.Beta.Raw),
	}
}

func first(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
