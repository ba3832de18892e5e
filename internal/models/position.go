package models

import (
	"github.com/shopspring/decimal"
)

// Security type discriminant values as delivered by the brokerage feed.
// Anything other than SecTypeStock normalizes as an option; the feed has
// only been observed sending 1 and 2, but upstream treats every non-1
// value as an option and we match that.
const (
	SecTypeStock  = 1
	SecTypeOption = 2
)

// Holding is implemented by both position variants. Callers that need
// variant-specific fields type-assert to *Stock or *Option.
type Holding interface {
	Base() *Position
	CurrentValue() decimal.Decimal
	ProfitLoss() decimal.Decimal
	String() string
}

// Position holds the fields common to every brokerage position. A
// Position is built once by the normalizer and never mutated afterwards.
type Position struct {
	Symbol         string          `json:"symbol"`
	SecType        int             `json:"sec_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	MarketValue    decimal.Decimal `json:"market_value"`
	Cost           decimal.Decimal `json:"cost"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	AdjCost        decimal.Decimal `json:"adj_cost"`
	AdjUnitCost    decimal.Decimal `json:"adj_unit_cost"`
	AdjGainLoss    decimal.Decimal `json:"adj_gainloss"`
	AdjGainLossPct decimal.Decimal `json:"adj_gainloss_percent"`
	CompanyName    string          `json:"company_name"`
	Last           decimal.Decimal `json:"last"`
	Bid            decimal.Decimal `json:"bid"`
	Ask            decimal.Decimal `json:"ask"`
	Volume         int64           `json:"vol"`
	Close          decimal.Decimal `json:"close"`
	Change         decimal.Decimal `json:"change"`
	ChangePercent  decimal.Decimal `json:"change_percent"`
	Time           string          `json:"time"`
	PurchaseDate   string          `json:"purchase_date"`
	DaysHeld       int             `json:"day_held"`
}

// Base returns the common position fields.
func (p *Position) Base() *Position { return p }

// CurrentValue returns quantity * last. No rounding is applied.
func (p *Position) CurrentValue() decimal.Decimal {
	return p.Quantity.Mul(p.Last)
}

// ProfitLoss returns market value minus cost basis.
func (p *Position) ProfitLoss() decimal.Decimal {
	return p.MarketValue.Sub(p.Cost)
}
