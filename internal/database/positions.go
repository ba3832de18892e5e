package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/trogers1052/position-service/internal/models"
)

const positionColumns = `
	id, symbol, sec_type, company_name, quantity, market_value, cost, last,
	current_value, profit_loss, days_held,
	ticker, expiration_date, strike_price, option_type,
	created_at, updated_at
`

// ReplaceAllPositions swaps the stored snapshot for a new one in a
// single transaction. The feed delivers full snapshots, so the previous
// rows are always removed first.
func (db *DB) ReplaceAllPositions(records []*models.PositionRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM positions"); err != nil {
		return fmt.Errorf("failed to clear positions: %w", err)
	}

	query := `
		INSERT INTO positions (
			symbol, sec_type, company_name, quantity, market_value, cost, last,
			current_value, profit_loss, days_held,
			ticker, expiration_date, strike_price, option_type,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	now := time.Now()
	for _, r := range records {
		var expiration sql.NullTime
		if r.Expiration != nil {
			expiration = sql.NullTime{Time: *r.Expiration, Valid: true}
		}

		err := tx.QueryRow(query,
			r.Symbol, r.SecType, r.CompanyName, r.Quantity, r.MarketValue, r.Cost, r.Last,
			r.CurrentValue, r.ProfitLoss, r.DaysHeld,
			r.Ticker, expiration, r.Strike, r.OptionType,
			now, now,
		).Scan(&r.ID)
		if err != nil {
			return fmt.Errorf("failed to insert position %s: %w", r.Symbol, err)
		}
		r.CreatedAt = now
		r.UpdatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAllPositions retrieves the stored snapshot ordered by symbol
func (db *DB) GetAllPositions() ([]*models.PositionRecord, error) {
	query := `SELECT ` + positionColumns + ` FROM positions ORDER BY symbol`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var records []*models.PositionRecord
	for rows.Next() {
		record, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate positions: %w", err)
	}
	return records, nil
}

// GetPositionBySymbol retrieves one position by its (packed) symbol
func (db *DB) GetPositionBySymbol(symbol string) (*models.PositionRecord, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE symbol = $1`

	record, err := scanPosition(db.conn.QueryRow(query, symbol))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("position not found: %s", symbol)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// CountPositions returns the number of stored positions
func (db *DB) CountPositions() (int, error) {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM positions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count positions: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosition(row rowScanner) (*models.PositionRecord, error) {
	var r models.PositionRecord
	var companyName, ticker, optionType sql.NullString
	var expiration sql.NullTime

	err := row.Scan(
		&r.ID, &r.Symbol, &r.SecType, &companyName, &r.Quantity, &r.MarketValue, &r.Cost, &r.Last,
		&r.CurrentValue, &r.ProfitLoss, &r.DaysHeld,
		&ticker, &expiration, &r.Strike, &optionType,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan position: %w", err)
	}

	r.CompanyName = companyName.String
	r.Ticker = ticker.String
	r.OptionType = optionType.String
	if expiration.Valid {
		t := expiration.Time
		r.Expiration = &t
	}
	return &r, nil
}
