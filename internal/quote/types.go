package quote

// Yahoo Finance response shapes. Only the fields the client reads are declared.

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yfQuoteResponse wraps the v7 quote API response.
type yfQuoteResponse struct {
	QuoteResponse struct {
		Result []yfQuoteResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"quoteResponse"`
}

type yfQuoteResult struct {
	Symbol                     string   `json:"symbol"`
	ShortName                  string   `json:"shortName"`
	LongName                   string   `json:"longName"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64  `json:"regularMarketChange"`
	RegularMarketChangePercent float64  `json:"regularMarketChangePercent"`
	RegularMarketVolume        int64    `json:"regularMarketVolume"`
	RegularMarketTime          int64    `json:"regularMarketTime"`
	MarketCap                  *float64 `json:"marketCap"`
}

// yfChartResponse wraps the v8 chart API response.
type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta struct {
		Symbol string `json:"symbol"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []yfOHLCV `json:"quote"`
	} `json:"indicators"`
}

type yfOHLCV struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// yfQuoteSummaryResponse wraps the v10 quoteSummary API response.
type yfQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []yfQuoteSummaryResult `json:"result"`
		Error  *yfError               `json:"error"`
	} `json:"quoteSummary"`
}

type yfQuoteSummaryResult struct {
	DefaultKeyStatistics *yfDefaultKeyStatistics `json:"defaultKeyStatistics"`
	FinancialData        *yfFinancialData        `json:"financialData"`
	SummaryDetail        *yfSummaryDetail        `json:"summaryDetail"`
}

// yfVal is a formatted Yahoo number. Raw is nil when Yahoo sends {}.
type yfVal struct {
	Raw *float64 `json:"raw"`
}

type yfDefaultKeyStatistics struct {
	EnterpriseValue     yfVal `json:"enterpriseValue"`
	ForwardPE           yfVal `json:"forwardPE"`
	ProfitMargins       yfVal `json:"profitMargins"`
	Beta                yfVal `json:"beta"`
	PriceToBook         yfVal `json:"priceToBook"`
	EnterpriseToRevenue yfVal `json:"enterpriseToRevenue"`
	EnterpriseToEbitda  yfVal `json:"enterpriseToEbitda"`
}

type yfFinancialData struct {
	RevenueGrowth    yfVal `json:"revenueGrowth"`
	EarningsGrowth   yfVal `json:"earningsGrowth"`
	OperatingMargins yfVal `json:"operatingMargins"`
	ProfitMargins    yfVal `json:"profitMargins"`
	ReturnOnAssets   yfVal `json:"returnOnAssets"`
	ReturnOnEquity   yfVal `json:"returnOnEquity"`
	DebtToEquity     yfVal `json:"debtToEquity"`
	CurrentRatio     yfVal `json:"currentRatio"`
	QuickRatio       yfVal `json:"quickRatio"`
}

type yfSummaryDetail struct {
	MarketCap                    yfVal `json:"marketCap"`
	TrailingPE                   yfVal `json:"trailingPE"`
	ForwardPE                    yfVal `json:"forwardPE"`
	PriceToSalesTrailing12Months yfVal `json:"priceToSalesTrailing12Months"`
	DividendYield                yfVal `json:"dividendYield"`
	PayoutRatio                  yfVal `json:"payoutRatio"`
	Beta                         yfVal `json:"beta"`
}
