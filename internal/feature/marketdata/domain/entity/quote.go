package entity

import "github.com/shopspring/decimal"

// Quote is the latest price of a symbol.
//
// ChangePercent is in percentage units (1.5 means 1.5%), unlike the yield-like fields of
// Overview which are fractional. Consumers depend on this asymmetry.
type Quote struct {
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}
