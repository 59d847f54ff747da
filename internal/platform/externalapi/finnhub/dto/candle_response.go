package dto

import "github.com/shopspring/decimal"

// CandleResponse represents the JSON response from the /stock/candle endpoint.
// The arrays are parallel; Status is "ok" or "no_data".
type CandleResponse struct {
	Close     []decimal.Decimal `json:"c"`
	High      []decimal.Decimal `json:"h"`
	Low       []decimal.Decimal `json:"l"`
	Open      []decimal.Decimal `json:"o"`
	Volume    []decimal.Decimal `json:"v"`
	Timestamp []int64           `json:"t"`
	Status    string            `json:"s"`
}
