// Package entity defines the canonical market-data shapes produced by the marketdata feature.
// Every value is built fresh per request and is never cached or mutated after it is returned.
package entity

// SearchMatch is one row of a symbol search.
type SearchMatch struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Region string `json:"region"`
}

// MaxSecondarySearchMatches caps search rows taken from the secondary provider.
const MaxSecondarySearchMatches = 10
