// Package positions normalizes raw brokerage position documents into
// typed Stock and Option models. Parsing is pure and synchronous: every
// call either returns the full normalized list or fails as a whole, and
// nothing here logs or retries.
package positions

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/position-service/internal/models"
)

// ErrMissingItems is returned when the positions document has no
// top-level "items" key.
var ErrMissingItems = errors.New("positions data must contain an 'items' key")

// Parse normalizes a raw positions document into an ordered list of
// holdings, one per entry in the document's "items" array, preserving
// input order. It accepts JSON text (string, []byte or json.RawMessage)
// or an already-decoded map; any other input type is an error. Failures
// are total: a bad entry fails the whole call, never a partial list.
func Parse(input any) ([]models.Holding, error) {
	var raw []byte
	switch v := input.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	case map[string]any:
		var err error
		raw, err = json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("error parsing positions: %w", err)
		}
	default:
		return nil, fmt.Errorf("positions input must be a JSON string or a map, got %T", input)
	}
	return parseDocument(raw)
}

func parseDocument(raw []byte) ([]models.Holding, error) {
	var doc struct {
		Items *[]json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("invalid positions JSON at offset %d in %q: %w",
				syntaxErr.Offset, truncateForError(raw), err)
		}
		return nil, fmt.Errorf("error parsing positions: %w", err)
	}
	if doc.Items == nil {
		return nil, ErrMissingItems
	}

	holdings := make([]models.Holding, 0, len(*doc.Items))
	for i, item := range *doc.Items {
		holding, err := parseItem(item)
		if err != nil {
			return nil, fmt.Errorf("error parsing positions: item %d: %w", i, err)
		}
		holdings = append(holdings, holding)
	}
	return holdings, nil
}

// parseItem dispatches on the sec_type discriminant. An absent
// discriminant defaults to stock; any present value other than 1 takes
// the option path, matching the upstream feed's catch-all behavior.
func parseItem(item json.RawMessage) (models.Holding, error) {
	var disc struct {
		SecType *int `json:"sec_type"`
	}
	if err := json.Unmarshal(item, &disc); err != nil {
		return nil, err
	}

	secType := models.SecTypeStock
	if disc.SecType != nil {
		secType = *disc.SecType
	}

	if secType == models.SecTypeStock {
		return parseStock(item, secType)
	}
	return parseOption(item, secType)
}

func parseStock(item json.RawMessage, secType int) (*models.Stock, error) {
	var w wireStock
	if err := json.Unmarshal(item, &w); err != nil {
		return nil, err
	}

	return &models.Stock{
		Position:      w.position(secType),
		EPS:           w.EPS,
		PE:            w.PE,
		DivShare:      w.DivShare,
		Yield:         w.Yield,
		ExDivDate:     w.ExDivDate,
		DivDate:       w.DivDate,
		MarketCap:     w.MarketCap,
		Beta:          w.Beta,
		AnnualDivRate: w.AnnualDivRate,
		AvgVolume:     w.AvgVolume,
		Week52High:    w.Week52High,
		Week52Low:     w.Week52Low,
		HasLots:       w.HasLots,
		OpenPx:        w.OpenPx,
		DayHigh:       w.DayHigh,
		DayLow:        w.DayLow,
	}, nil
}

func parseOption(item json.RawMessage, secType int) (*models.Option, error) {
	var w wireOption
	if err := json.Unmarshal(item, &w); err != nil {
		return nil, err
	}

	// An option only exists with a successfully decoded symbol. A decode
	// failure fails the entry; there is no partially decoded option.
	contract, err := models.ParseOptionSymbol(w.Symbol)
	if err != nil {
		return nil, err
	}

	return &models.Option{
		Position:       w.position(secType),
		OptionContract: contract,
		AskSize:        w.AskSize,
		BidSize:        w.BidSize,
		TodayShare:     w.TodayShare,
		TodayExePrice:  w.TodayExePrice,
		Drip:           w.Drip,
		Loan:           w.Loan,
	}, nil
}

// truncateForError keeps diagnostics readable for large documents.
func truncateForError(raw []byte) string {
	const max = 120
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max]) + "..."
}

// wireCommon maps the feed's wire names onto the common position
// schema. Absent fields decode to Go zero values, which are exactly the
// feed's per-field defaults: numerics 0, strings "", booleans false.
type wireCommon struct {
	Quantity       decimal.Decimal `json:"quantity"`
	Symbol         string          `json:"symbol"`
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

func (w *wireCommon) position(secType int) models.Position {
	return models.Position{
		Symbol:         w.Symbol,
		SecType:        secType,
		Quantity:       w.Quantity,
		MarketValue:    w.MarketValue,
		Cost:           w.Cost,
		UnitCost:       w.UnitCost,
		AdjCost:        w.AdjCost,
		AdjUnitCost:    w.AdjUnitCost,
		AdjGainLoss:    w.AdjGainLoss,
		AdjGainLossPct: w.AdjGainLossPct,
		CompanyName:    w.CompanyName,
		Last:           w.Last,
		Bid:            w.Bid,
		Ask:            w.Ask,
		Volume:         w.Volume,
		Close:          w.Close,
		Change:         w.Change,
		ChangePercent:  w.ChangePercent,
		Time:           w.Time,
		PurchaseDate:   w.PurchaseDate,
		DaysHeld:       w.DaysHeld,
	}
}

// wireStock adds the stock schema. The feed's "yield", "52w_high" and
// "52w_low" names are not usable as identifiers, so the rename between
// wire name and model field lives here and nowhere else.
type wireStock struct {
	wireCommon

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
	Week52High    decimal.Decimal `json:"52w_high"`
	Week52Low     decimal.Decimal `json:"52w_low"`
	HasLots       bool            `json:"has_lots"`
	OpenPx        decimal.Decimal `json:"open_px"`
	DayHigh       decimal.Decimal `json:"day_high"`
	DayLow        decimal.Decimal `json:"day_low"`
}

// wireOption adds the option schema.
type wireOption struct {
	wireCommon

	AskSize       int64           `json:"asksize"`
	BidSize       int64           `json:"bidsize"`
	TodayShare    int64           `json:"today_share"`
	TodayExePrice decimal.Decimal `json:"today_exe_price"`
	Drip          bool            `json:"drip"`
	Loan          bool            `json:"loan"`
}
