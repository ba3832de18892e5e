package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Option contract side constants
const (
	OptionTypeCall = "Call"
	OptionTypePut  = "Put"
)

// nycLocation anchors expiration dates and day counts to the exchange
// timezone.
var nycLocation = mustLoadNYC()

func mustLoadNYC() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(fmt.Sprintf("load America/New_York: %v", err))
	}
	return loc
}

// OptionContract is the structured form of a packed option symbol:
// underlying ticker, expiration date, strike price and contract side.
// It is produced only by ParseOptionSymbol.
type OptionContract struct {
	Ticker     string          `json:"ticker"`
	Expiration time.Time       `json:"expiration_date"`
	Strike     decimal.Decimal `json:"strike_price"`
	OptionType string          `json:"option_type"`
}

// Option represents an option position. The embedded OptionContract is
// decoded from the packed symbol at construction time; an Option never
// exists with a symbol its contract fields disagree with.
type Option struct {
	Position
	OptionContract

	AskSize       int64           `json:"asksize"`
	BidSize       int64           `json:"bidsize"`
	TodayShare    int64           `json:"today_share"`
	TodayExePrice decimal.Decimal `json:"today_exe_price"`
	Drip          bool            `json:"drip"`
	Loan          bool            `json:"loan"`
}

// ContractType returns the contract side, OptionTypeCall or OptionTypePut.
func (o *Option) ContractType() string {
	return o.OptionType
}

// DaysToExpiration returns the whole-day count from today until the
// expiration date, both taken as calendar dates in the exchange
// timezone. It returns 0 on expiration day and negative counts after
// expiry. ok is false when no expiration date is set, which is distinct
// from expiring today.
func (o *Option) DaysToExpiration() (days int, ok bool) {
	if o.Expiration.IsZero() {
		return 0, false
	}
	// Diff the calendar dates at UTC midnight so DST transitions in the
	// exchange timezone cannot shave an hour off the interval.
	now := time.Now().In(nycLocation)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	exp := time.Date(o.Expiration.Year(), o.Expiration.Month(), o.Expiration.Day(), 0, 0, 0, 0, time.UTC)
	return int(exp.Sub(today).Hours() / 24), true
}

func (o *Option) String() string {
	return fmt.Sprintf("Option: %s of %s (%s %s $%s %s) at $%s, Market Value: $%s",
		o.Quantity, o.Symbol,
		o.Ticker, o.Expiration.Format("01/02/2006"),
		o.Strike.StringFixed(2), o.OptionType,
		o.Last.StringFixed(2), o.MarketValue.StringFixed(2))
}
