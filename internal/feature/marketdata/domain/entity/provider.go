package entity

// Provider names, in fallback order.
const (
	ProviderAlphaVantage = "alphavantage"
	ProviderFinnhub      = "finnhub"
)

// HistoryRequest is the input of the history operation.
type HistoryRequest struct {
	Symbol string
	Size   OutputSize
}
