package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidOptionSymbol is returned when a packed option symbol does
// not match the <TICKER><YYMMDD><C|P><8-digit strike> wire format.
var ErrInvalidOptionSymbol = errors.New("invalid option symbol format")

// optionSuffixLen is the fixed width of the date + side + strike tail:
// 6-digit YYMMDD date, one C/P character, 8-digit strike in thousandths.
const optionSuffixLen = 15

// ParseOptionSymbol decodes a packed option symbol such as
// "OSCR260116P00016000" into its contract fields. The symbol carries no
// separators, but the tail is fixed width, so the ticker/date split sits
// at len-15 and everything before it is the ticker (at least one
// character). Strikes are encoded in thousandths: 00016000 is 16.000.
func ParseOptionSymbol(symbol string) (OptionContract, error) {
	split := len(symbol) - optionSuffixLen
	if split < 1 {
		return OptionContract{}, fmt.Errorf("%w: %q", ErrInvalidOptionSymbol, symbol)
	}

	dateStr := symbol[split : split+6]
	side := symbol[split+6]
	strikeStr := symbol[split+7:]
	if !isASCIIDigits(dateStr) || (side != 'C' && side != 'P') || !isASCIIDigits(strikeStr) {
		return OptionContract{}, fmt.Errorf("%w: %q", ErrInvalidOptionSymbol, symbol)
	}

	yy, _ := strconv.Atoi(dateStr[0:2])
	mm, _ := strconv.Atoi(dateStr[2:4])
	dd, _ := strconv.Atoi(dateStr[4:6])

	// The century is fixed: symbols before 2000 or after 2099 do not occur.
	// time.Date normalizes out-of-range components (month 13 rolls into
	// January) instead of failing, so check the round trip.
	expiration := time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, nycLocation)
	if expiration.Month() != time.Month(mm) || expiration.Day() != dd {
		return OptionContract{}, fmt.Errorf("parse option symbol %q: invalid expiration date %q: %w",
			symbol, dateStr, ErrInvalidOptionSymbol)
	}

	strikeThousandths, err := strconv.ParseInt(strikeStr, 10, 64)
	if err != nil {
		return OptionContract{}, fmt.Errorf("parse option symbol %q: %w", symbol, err)
	}

	optionType := OptionTypeCall
	if side == 'P' {
		optionType = OptionTypePut
	}

	return OptionContract{
		Ticker:     symbol[:split],
		Expiration: expiration,
		Strike:     decimal.New(strikeThousandths, -3),
		OptionType: optionType,
	}, nil
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
