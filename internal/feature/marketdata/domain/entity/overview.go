package entity

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// NotAvailable is the placeholder for descriptive Overview fields the provider did not return.
const NotAvailable = "N/A"

// Overview holds company fundamentals.
//
// Every field is always serialized: unknown numbers are null, unknown text is NotAvailable.
// DividendYield, PayoutRatio and ReturnOnEquity are fractions (0.03 = 3%).
// MarketCapitalization is in absolute currency units.
type Overview struct {
	Name                 string              `json:"name"`
	Exchange             string              `json:"exchange"`
	Sector               string              `json:"sector"`
	Industry             string              `json:"industry"`
	Description          string              `json:"description"`
	MarketCapitalization decimal.NullDecimal `json:"marketCapitalization"`
	DividendYield        decimal.NullDecimal `json:"dividendYield"`
	DividendPerShare     decimal.NullDecimal `json:"dividendPerShare"`
	Week52High           decimal.NullDecimal `json:"week52High"`
	Week52Low            decimal.NullDecimal `json:"week52Low"`
	PERatio              decimal.NullDecimal `json:"peRatio"`
	EPS                  decimal.NullDecimal `json:"eps"`
	BookValue            decimal.NullDecimal `json:"bookValue"`
	PayoutRatio          decimal.NullDecimal `json:"payoutRatio"`
	ExDividendDate       *openapi_types.Date `json:"exDividendDate"`
	ReturnOnEquity       decimal.NullDecimal `json:"returnOnEquity"`
	MovingAverage50Day   decimal.NullDecimal `json:"movingAverage50Day"`
	MovingAverage200Day  decimal.NullDecimal `json:"movingAverage200Day"`
}

// NewOverview returns an Overview with every descriptive field set to NotAvailable and
// every number null.
func NewOverview() Overview {
	return Overview{
		Name:        NotAvailable,
		Exchange:    NotAvailable,
		Sector:      NotAvailable,
		Industry:    NotAvailable,
		Description: NotAvailable,
	}
}
