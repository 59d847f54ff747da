package dto

import "github.com/shopspring/decimal"

// QuoteResponse represents the JSON response from the /quote endpoint.
// Unknown symbols come back with every field zero (d and dp null).
type QuoteResponse struct {
	Current       decimal.Decimal     `json:"c"`
	Change        decimal.NullDecimal `json:"d"`
	PercentChange decimal.NullDecimal `json:"dp"`
	High          decimal.Decimal     `json:"h"`
	Low           decimal.Decimal     `json:"l"`
	Open          decimal.Decimal     `json:"o"`
	PreviousClose decimal.Decimal     `json:"pc"`
	Timestamp     int64               `json:"t"`
}
