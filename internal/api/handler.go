package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/smartinvest/internal/domain/dto"
	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/middleware"
	"github.com/guttosm/smartinvest/internal/service"
)

const (
	apiVersion            = "1.0.0"
	defaultBatchSymbols   = "AAPL,GOOGL,MSFT,TSLA"
	defaultMarketCategory = "business"
	defaultHistoryLimit   = 20
	maxHistoryLimit       = 100
)

var features = []string{
	"Stock Data",
	"News Analysis",
	"Sentiment Analysis",
	"Fundamental Analysis",
	"AI Recommendations",
}

// Handler provides HTTP handlers for the stock analysis endpoints.
//
// Responsibilities:
//   - Validate path and query parameters
//   - Delegate to the analysis service
//   - Translate service results into response DTOs
//   - Map service errors to HTTP status codes
type Handler struct {
	svc  service.AnalysisService
	name string
	now  func() time.Time
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.AnalysisService): the analysis service behind every route.
//   - name (string): the service name shown by the info endpoint.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.AnalysisService, name string) *Handler {
	return &Handler{svc: svc, name: name, now: time.Now}
}

// symbolParam normalizes the :symbol path parameter, aborting with 400 when it is malformed.
func (h *Handler) symbolParam(c *gin.Context) (string, bool) {
	sym, err := service.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid symbol", err)
		return "", false
	}
	return sym, true
}

// GetInfo godoc
// @Summary      Service info
// @Description  Returns the service name, version and feature list
// @Tags         info
// @Produce      json
// @Success      200  {object}  dto.ServiceInfo
// @Router       /api/v1/ [get]
func (h *Handler) GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ServiceInfo{
		Message:   h.name + " API",
		Version:   apiVersion,
		Timestamp: h.now().UTC(),
		Features:  features,
	})
}

// GetHealth godoc
// @Summary      Service health
// @Description  Reports liveness and the providers in use
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /api/v1/health [get]
func (h *Handler) GetHealth(c *gin.Context) {
	pb := h.svc.PoweredBy()
	services := make(map[string]string, len(pb))
	for i, key := range []string{"stock_data", "news", "sentiment"} {
		if i < len(pb) {
			services[key] = pb[i]
		}
	}
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Services:  services,
	})
}

// GetStock godoc
// @Summary      Current quote
// @Description  Returns the latest quote of one symbol
// @Tags         stocks
// @Produce      json
// @Param        symbol  path      string  true  "Ticker symbol" example(AAPL)
// @Success      200     {object}  models.Quote
// @Failure      400     {object}  dto.ErrorResponse  "Malformed symbol"
// @Failure      404     {object}  dto.ErrorResponse  "Unknown symbol"
// @Failure      502     {object}  dto.ErrorResponse  "Provider failure"
// @Router       /api/v1/stock/{symbol} [get]
func (h *Handler) GetStock(c *gin.Context) {
	sym, ok := h.symbolParam(c)
	if !ok {
		return
	}
	q, err := h.svc.Quote(c.Request.Context(), sym)
	if err != nil {
		respondError(c, "Stock data not found for symbol: "+sym, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// GetMultipleStocks godoc
// @Summary      Batch quotes
// @Description  Quotes several symbols; malformed symbols and symbols that cannot be quoted are listed in errors
// @Tags         stocks
// @Produce      json
// @Param        symbols  query     string  false  "Comma separated symbols" default(AAPL,GOOGL,MSFT,TSLA)
// @Success      200      {object}  dto.BatchQuotesResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/multiple [get]
func (h *Handler) GetMultipleStocks(c *gin.Context) {
	raw := c.DefaultQuery("symbols", defaultBatchSymbols)
	symbols, rejected := service.NormalizeSymbols(raw)
	if len(symbols) == 0 {
		var cause error
		if len(rejected) > 0 {
			cause = rejected[0].Err
		}
		middleware.AbortWithError(c, http.StatusBadRequest, "at least one valid symbol required", cause)
		return
	}

	quotes, failed, err := h.svc.Quotes(c.Request.Context(), symbols)
	if err != nil {
		respondError(c, "failed to fetch quotes", err)
		return
	}

	resp := dto.BatchQuotesResponse{
		Data:   quotes,
		Errors: make([]dto.SymbolError, 0, len(rejected)+len(failed)),
		Count:  len(quotes),
	}
	if resp.Data == nil {
		resp.Data = []models.Quote{}
	}
	for _, f := range append(rejected, failed...) {
		resp.Errors = append(resp.Errors, dto.SymbolError{Symbol: f.Symbol, Error: f.Err.Error()})
	}
	c.JSON(http.StatusOK, resp)
}

// GetStockNews godoc
// @Summary      Stock news
// @Description  Returns recent articles mentioning the symbol or its company name
// @Tags         news
// @Produce      json
// @Param        symbol  path      string  true   "Ticker symbol" example(AAPL)
// @Param        days    query     int     false  "Look-back window in days" minimum(1) maximum(7) default(1)
// @Success      200     {array}   models.NewsArticle
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Failure      503     {object}  dto.ErrorResponse  "News provider not configured"
// @Router       /api/v1/news/{symbol} [get]
func (h *Handler) GetStockNews(c *gin.Context) {
	sym, ok := h.symbolParam(c)
	if !ok {
		return
	}
	days, err := intQuery(c, "days", 1, 1, 7)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	articles, err := h.svc.News(c.Request.Context(), sym, days)
	if err != nil {
		respondError(c, "failed to fetch news", err)
		return
	}
	c.JSON(http.StatusOK, nonNilArticles(articles))
}

// GetMarketNews godoc
// @Summary      Market news
// @Description  Returns top headlines of a news category
// @Tags         news
// @Produce      json
// @Param        category  query     string  false  "News category" default(business)
// @Success      200       {array}   models.NewsArticle
// @Failure      502       {object}  dto.ErrorResponse
// @Failure      503       {object}  dto.ErrorResponse
// @Router       /api/v1/news/market [get]
func (h *Handler) GetMarketNews(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.DefaultQuery("category", defaultMarketCategory)))
	if category == "" {
		category = defaultMarketCategory
	}
	articles, err := h.svc.MarketNews(c.Request.Context(), category)
	if err != nil {
		respondError(c, "failed to fetch market news", err)
		return
	}
	c.JSON(http.StatusOK, nonNilArticles(articles))
}

// GetSentiment godoc
// @Summary      News sentiment
// @Description  Scores recent articles and aggregates them into an overall sentiment
// @Tags         sentiment
// @Produce      json
// @Param        symbol  path      string  true   "Ticker symbol" example(AAPL)
// @Param        days    query     int     false  "Look-back window in days" minimum(1) maximum(7) default(1)
// @Param        limit   query     int     false  "Articles to analyze" minimum(1) maximum(20) default(5)
// @Success      200     {object}  models.SentimentSummary
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/v1/sentiment/{symbol} [get]
func (h *Handler) GetSentiment(c *gin.Context) {
	sym, ok := h.symbolParam(c)
	if !ok {
		return
	}
	days, err := intQuery(c, "days", 1, 1, 7)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	limit, err := intQuery(c, "limit", 5, 1, 20)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	summary, err := h.svc.Sentiment(c.Request.Context(), sym, days, limit)
	if err != nil {
		respondError(c, "failed to analyze sentiment", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetFundamentals godoc
// @Summary      Fundamental analysis
// @Description  Key metrics, technical indicators, ratios, risk and valuation of one symbol
// @Tags         analysis
// @Produce      json
// @Param        symbol  path      string  true  "Ticker symbol" example(AAPL)
// @Success      200     {object}  models.FundamentalAnalysis
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/v1/fundamentals/{symbol} [get]
func (h *Handler) GetFundamentals(c *gin.Context) {
	sym, ok := h.symbolParam(c)
	if !ok {
		return
	}
	fa, err := h.svc.Fundamentals(c.Request.Context(), sym)
	if err != nil {
		respondError(c, "failed to compute fundamental analysis", err)
		return
	}
	c.JSON(http.StatusOK, fa)
}

// GetTechnical godoc
// @Summary      Technical analysis
// @Description  Technical indicators and risk metrics computed from one year of daily bars
// @Tags         analysis
// @Produce      json
// @Param        symbol  path      string  true  "Ticker symbol" example(AAPL)
// @Success      200     {object}  models.TechnicalAnalysis
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/v1/analysis/technical/{symbol} [get]
func (h *Handler) GetTechnical(c *gin.Context) {
	sym, ok := h.symbolParam(c)
	if !ok {
		return
	}
	ta, err := h.svc.Technical(c.Request.Context(), sym)
	if err != nil {
		respondError(c, "failed to compute technical analysis", err)
		return
	}
	c.JSON(http.StatusOK, ta)
}

// GetSectorComparison godoc
// @Summary      Sector comparison
// @Description  Ranks the symbol against its peers on valuation and profitability metrics
// @Tags         analysis
// @Produce      json
// @Param        symbol  path      string  true  "Ticker symbol" example(AAPL)
// @Param        peers   query     string  true  "Comma separated peer symbols" example(MSFT,GOOGL)
// @Success      200     {object}  models.SectorComparison
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/v1/comparison/sector/{symbol} [get]
func (h *Handler) GetSectorComparison(c *gin.Context) {
	sym, ok := h.symbolParam(c)
	if !ok {
		return
	}
	peers, rejected := service.NormalizeSymbols(c.Query("peers"))
	if len(rejected) > 0 {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid peer symbol: "+rejected[0].Symbol, rejected[0].Err)
		return
	}
	if len(peers) == 0 {
		middleware.AbortWithError(c, http.StatusBadRequest, "At least one peer symbol required", nil)
		return
	}
	cmp, err := h.svc.SectorComparison(c.Request.Context(), sym, peers)
	if err != nil {
		respondError(c, "failed to compare with sector", err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// GetCompleteAnalysis godoc
// @Summary      Complete analysis
// @Description  Quote, news sentiment and fundamentals fetched concurrently, with signals and a Buy/Hold/Sell recommendation.
// @Description  A section that could not be computed is marked unavailable; the response is 200 while at least one section is available.
// @Tags         analysis
// @Produce      json
// @Param        symbol  path      string  true  "Ticker symbol" example(AAPL)
// @Success      200     {object}  dto.CompleteAnalysisResponse
// @Failure      400     {object}  dto.ErrorResponse  "Malformed symbol"
// @Failure      502     {object}  dto.ErrorResponse  "Every section unavailable"
// @Router       /api/v1/analysis/complete/{symbol} [get]
func (h *Handler) GetCompleteAnalysis(c *gin.Context) {
	sym, ok := h.symbolParam(c)
	if !ok {
		return
	}
	a, err := h.svc.CompleteAnalysis(c.Request.Context(), sym)
	if err != nil {
		respondError(c, "complete analysis unavailable for "+sym, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCompleteAnalysisResponse(a, h.svc.PoweredBy()))
}

// GetAnalysisHistory godoc
// @Summary      Recommendation history
// @Description  Recorded recommendation snapshots of a symbol, newest first
// @Tags         analysis
// @Produce      json
// @Param        symbol  path      string  true   "Ticker symbol" example(AAPL)
// @Param        limit   query     int     false  "Snapshots to return" minimum(1) maximum(100) default(20)
// @Success      200     {object}  dto.HistoryResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      503     {object}  dto.ErrorResponse  "Storage disabled"
// @Router       /api/v1/analysis/history/{symbol} [get]
func (h *Handler) GetAnalysisHistory(c *gin.Context) {
	sym, ok := h.symbolParam(c)
	if !ok {
		return
	}
	limit, err := intQuery(c, "limit", defaultHistoryLimit, 1, maxHistoryLimit)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	snaps, err := h.svc.History(c.Request.Context(), sym, limit)
	if err != nil {
		respondError(c, "failed to load analysis history", err)
		return
	}
	if snaps == nil {
		snaps = []models.Snapshot{}
	}
	c.JSON(http.StatusOK, dto.HistoryResponse{Symbol: sym, Snapshots: snaps, Count: len(snaps)})
}

func nonNilArticles(a []models.NewsArticle) []models.NewsArticle {
	if a == nil {
		return []models.NewsArticle{}
	}
	return a
}
