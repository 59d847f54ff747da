package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHolding_Cost(t *testing.T) {
	t.Parallel()

	h := Holding{Shares: decimal.RequireFromString("2.5"), PurchasePrice: decimal.RequireFromString("100.10")}
	assert.True(t, decimal.RequireFromString("250.25").Equal(h.Cost()))
}
