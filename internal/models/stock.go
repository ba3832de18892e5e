package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// nearHighBand is the fixed 5% band below the 52-week high.
var nearHighBand = decimal.New(95, -2)

// Stock represents an equity position with its fundamentals snapshot.
// The json tags here are the internal representation, not the feed's
// wire names; the wire mapping (yield, 52w_high, 52w_low) lives in the
// normalizer's wire structs only.
type Stock struct {
	Position

	EPS           decimal.Decimal `json:"eps"`
	PE            decimal.Decimal `json:"pe"`
	DivShare      decimal.Decimal `json:"div_share"`
	Yield         decimal.Decimal `json:"yield"`
	ExDivDate     string          `json:"ex_div_date"`
	DivDate       string          `json:"div_date"`
	MarketCap     decimal.Decimal `json:"market_cap"`
	Beta          decimal.Decimal `json:"beta"`
	AnnualDivRate decimal.Decimal `json:"annual_div_rate"`
	AvgVolume     int64           `json:"avg_vol"`
	Week52High    decimal.Decimal `json:"week_52_high"`
	Week52Low     decimal.Decimal `json:"week_52_low"`
	HasLots       bool            `json:"has_lots"`
	OpenPx        decimal.Decimal `json:"open_px"`
	DayHigh       decimal.Decimal `json:"day_high"`
	DayLow        decimal.Decimal `json:"day_low"`
}

// DividendYield returns the stored yield. The feed's no-yield markers
// (null, 0, absent) all normalize to the zero decimal, so no separate
// absence check is needed.
func (s *Stock) DividendYield() decimal.Decimal {
	return s.Yield
}

// IsNear52WeekHigh reports whether last trades within 5% of the
// 52-week high. The band is fixed, not configurable.
func (s *Stock) IsNear52WeekHigh() bool {
	return s.Last.GreaterThanOrEqual(s.Week52High.Mul(nearHighBand))
}

func (s *Stock) String() string {
	return fmt.Sprintf("Stock: %s of %s (%s) at $%s, Market Value: $%s",
		s.Quantity, s.Symbol, s.CompanyName,
		s.Last.StringFixed(2), s.MarketValue.StringFixed(2))
}
