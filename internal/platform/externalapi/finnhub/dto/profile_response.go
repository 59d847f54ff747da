package dto

import "github.com/shopspring/decimal"

// ProfileResponse represents the JSON response from the /stock/profile2 endpoint.
// An unknown symbol yields an empty object.
type ProfileResponse struct {
	Country              string              `json:"country"`
	Currency             string              `json:"currency"`
	Exchange             string              `json:"exchange"`
	IPO                  string              `json:"ipo"`
	MarketCapitalization decimal.NullDecimal `json:"marketCapitalization"` // millions
	Name                 string              `json:"name"`
	Phone                string              `json:"phone"`
	ShareOutstanding     decimal.NullDecimal `json:"shareOutstanding"`
	Ticker               string              `json:"ticker"`
	WebURL               string              `json:"weburl"`
	Logo                 string              `json:"logo"`
	FinnhubIndustry      string              `json:"finnhubIndustry"`
}

// IsEmpty reports whether the profile carries nothing identifying.
func (p ProfileResponse) IsEmpty() bool {
	return p.Name == "" && p.Ticker == ""
}
