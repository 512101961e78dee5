package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/smartinvest/config"
	"github.com/guttosm/smartinvest/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteBody = `{"quoteResponse":{"result":[
  {"symbol":"AAPL","longName":"Apple Inc.","regularMarketPrice":190.5,"regularMarketChange":2.5,
   "regularMarketChangePercent":1.33,"regularMarketVolume":1000,"regularMarketTime":1700000000,"marketCap":2.9e12},
  {"symbol":"MSFT","shortName":"Microsoft","regularMarketPrice":330,"regularMarketChange":-1,
   "regularMarketChangePercent":-0.3,"regularMarketVolume":500}
],"error":null}}`

const chartBody = `{"chart":{"result":[{"meta":{"symbol":"AAPL"},
  "timestamp":[1700000000,1700086400,1700172800],
  "indicators":{"quote":[{"open":[1,2,3],"high":[1.5,2.5,3.5],"low":[0.5,1.5,2.5],"close":[1.2,null,3.2],"volume":[10,20,30]}]}}],"error":null}}`

const summaryBody = `{"quoteSummary":{"result":[{
  "defaultKeyStatistics":{"enterpriseValue":{"raw":3e12},"priceToBook":{"raw":45.1},"beta":{"raw":1.29},"forwardPE":{}},
  "financialData":{"returnOnEquity":{"raw":1.47},"earningsGrowth":{"raw":0.11},"profitMargins":{"raw":0.25}},
  "summaryDetail":{"marketCap":{"raw":2.9e12},"trailingPE":{"raw":29.4},"forwardPE":{"raw":27.1}}
}],"error":null}}`

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := upstream.DefaultCallerConfig("yahoo-test", time.Second, 0)
	c := NewClient(config.QuoteConfig{BaseURL: srv.URL}, upstream.NewCaller(cfg), srv.Client())
	c.(*yahooClient).now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return c
}

func TestQuotes_PartialBatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.Equal(t, "AAPL,INVALIDXYZ,MSFT", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(quoteBody))
	})

	quotes, missing, err := c.Quotes(context.Background(), []string{"AAPL", "INVALIDXYZ", "MSFT"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, "Apple Inc.", quotes[0].Name)
	assert.Equal(t, 190.5, quotes[0].Price)
	require.NotNil(t, quotes[0].MarketCap)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), quotes[0].Timestamp)

	assert.Equal(t, "Microsoft", quotes[1].Name)
	assert.Nil(t, quotes[1].MarketCap)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), quotes[1].Timestamp)

	require.Len(t, missing, 1)
	assert.Equal(t, "INVALIDXYZ", missing[0].Symbol)
	assert.ErrorIs(t, missing[0].Err, upstream.ErrInvalidSymbol)
}

func TestQuote_UnknownSymbol(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"quoteResponse":{"result":[],"error":null}}`))
	})
	_, err := c.Quote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, upstream.ErrInvalidSymbol)
}

func TestQuote_UpstreamDown(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := c.Quote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, upstream.ErrUnavailable)
}

func TestHistory_SkipsNullCloses(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "1y", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(chartBody))
	})

	bars, err := c.History(context.Background(), "AAPL", "")
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 1.2, bars[0].Close)
	assert.Equal(t, 3.2, bars[1].Close)
	assert.Equal(t, int64(30), bars[1].Volume)
}

func TestHistory_NotFoundBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	})
	_, err := c.History(context.Background(), "ZZZZ", "1y")
	assert.ErrorIs(t, err, upstream.ErrInvalidSymbol)
}

func TestStatistics_MapsModules(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v10/finance/quoteSummary/AAPL", r.URL.Path)
		assert.Equal(t, statisticsModules, r.URL.Query().Get("modules"))
		_, _ = w.Write([]byte(summaryBody))
	})

	m, err := c.Statistics(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, m.TrailingPE)
	assert.Equal(t, 29.4, *m.TrailingPE)
	require.NotNil(t, m.ForwardPE)
	assert.Equal(t, 27.1, *m.ForwardPE, "empty key statistic falls back to summary detail")
	assert.Equal(t, 1.29, *m.Beta)
	assert.Equal(t, 1.47, *m.ReturnOnEquity)
	assert.Nil(t, m.DebtToEquity)
}

func TestStatistics_Malformed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})
	_, err := c.Statistics(context.Background(), "AAPL")
	assert.ErrorIs(t, err, upstream.ErrMalformed)
}
