package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionRecord is the flattened snapshot row stored for reporting.
// Derived values are computed once at normalization time; the option
// contract columns are empty for stock rows.
type PositionRecord struct {
	ID           int             `json:"id"`
	Symbol       string          `json:"symbol"`
	SecType      int             `json:"sec_type"`
	CompanyName  string          `json:"company_name,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	MarketValue  decimal.Decimal `json:"market_value"`
	Cost         decimal.Decimal `json:"cost"`
	Last         decimal.Decimal `json:"last"`
	CurrentValue decimal.Decimal `json:"current_value"`
	ProfitLoss   decimal.Decimal `json:"profit_loss"`
	DaysHeld     int             `json:"days_held"`
	Ticker       string          `json:"ticker,omitempty"`
	Expiration   *time.Time      `json:"expiration_date,omitempty"`
	Strike       decimal.Decimal `json:"strike_price,omitempty"`
	OptionType   string          `json:"option_type,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewPositionRecord flattens a normalized holding into its snapshot row.
func NewPositionRecord(h Holding) *PositionRecord {
	p := h.Base()
	record := &PositionRecord{
		Symbol:       p.Symbol,
		SecType:      p.SecType,
		CompanyName:  p.CompanyName,
		Quantity:     p.Quantity,
		MarketValue:  p.MarketValue,
		Cost:         p.Cost,
		Last:         p.Last,
		CurrentValue: h.CurrentValue(),
		ProfitLoss:   h.ProfitLoss(),
		DaysHeld:     p.DaysHeld,
	}

	if opt, ok := h.(*Option); ok {
		expiration := opt.Expiration
		record.Ticker = opt.Ticker
		record.Expiration = &expiration
		record.Strike = opt.Strike
		record.OptionType = opt.OptionType
	}
	return record
}
