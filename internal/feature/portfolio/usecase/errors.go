// Package usecase implements portfolio and holding management.
package usecase

import "errors"

var (
	// ErrPortfolioNotFound is returned for missing portfolios and for portfolios owned by
	// another user.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrHoldingNotFound is returned for missing holdings and for holdings in another
	// user's portfolio.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrValidation wraps every input validation failure.
	ErrValidation = errors.New("validation failed")
)
