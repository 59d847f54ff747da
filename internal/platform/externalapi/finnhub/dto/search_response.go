// Package dto defines data transfer objects for the Finnhub REST API responses.
package dto

// SearchResponse represents the JSON response from the /search endpoint.
type SearchResponse struct {
	Count  int `json:"count"`
	Result []struct {
		Description   string `json:"description"`
		DisplaySymbol string `json:"displaySymbol"`
		Symbol        string `json:"symbol"`
		Type          string `json:"type"`
	} `json:"result"`
}
