package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPositionCurrentValue(t *testing.T) {
	t.Run("is quantity times last", func(t *testing.T) {
		p := &Position{
			Quantity: decimal.NewFromInt(100),
			Last:     decimal.RequireFromString("175.25"),
		}
		assert.True(t, decimal.RequireFromString("17525").Equal(p.CurrentValue()))
	})

	t.Run("short positions go negative", func(t *testing.T) {
		p := &Position{
			Quantity: decimal.NewFromInt(-10),
			Last:     decimal.RequireFromString("12.34"),
		}
		assert.True(t, decimal.RequireFromString("-123.4").Equal(p.CurrentValue()))
	})

	t.Run("exact with fractional quantities", func(t *testing.T) {
		p := &Position{
			Quantity: decimal.RequireFromString("0.125"),
			Last:     decimal.RequireFromString("0.3"),
		}
		assert.True(t, decimal.RequireFromString("0.0375").Equal(p.CurrentValue()))
	})
}

func TestPositionProfitLoss(t *testing.T) {
	t.Run("is market value minus cost", func(t *testing.T) {
		p := &Position{
			MarketValue: decimal.RequireFromString("15000.50"),
			Cost:        decimal.RequireFromString("12000.25"),
		}
		assert.True(t, decimal.RequireFromString("3000.25").Equal(p.ProfitLoss()))
	})

	t.Run("loss is negative", func(t *testing.T) {
		p := &Position{
			MarketValue: decimal.NewFromInt(900),
			Cost:        decimal.NewFromInt(1000),
		}
		assert.True(t, decimal.NewFromInt(-100).Equal(p.ProfitLoss()))
	})
}
