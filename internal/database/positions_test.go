package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/position-service/internal/models"
	"github.com/trogers1052/position-service/internal/positions"
)

func TestPositionsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("ReplaceAllPositions stores a snapshot", func(t *testing.T) {
		testDB.TruncateAll(t)

		records := []*models.PositionRecord{
			{
				Symbol:       "AAPL",
				SecType:      models.SecTypeStock,
				CompanyName:  "Apple Inc.",
				Quantity:     decimal.NewFromInt(100),
				MarketValue:  decimal.RequireFromString("15050.00"),
				Cost:         decimal.NewFromInt(12000),
				Last:         decimal.RequireFromString("150.50"),
				CurrentValue: decimal.RequireFromString("15050.00"),
				ProfitLoss:   decimal.RequireFromString("3050.00"),
				DaysHeld:     42,
			},
			{
				Symbol:      "OSCR260116P00016000",
				SecType:     models.SecTypeOption,
				Quantity:    decimal.NewFromInt(2),
				MarketValue: decimal.NewFromInt(90),
				Ticker:      "OSCR",
				Strike:      decimal.RequireFromString("16"),
				OptionType:  models.OptionTypePut,
			},
		}

		err := testDB.ReplaceAllPositions(records)
		require.NoError(t, err)
		assert.NotZero(t, records[0].ID)
		assert.NotZero(t, records[1].ID)
		assert.False(t, records[0].CreatedAt.IsZero())

		count, err := testDB.CountPositions()
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("ReplaceAllPositions drops the previous snapshot", func(t *testing.T) {
		testDB.TruncateAll(t)

		first := []*models.PositionRecord{
			{Symbol: "AAPL", SecType: models.SecTypeStock},
			{Symbol: "MSFT", SecType: models.SecTypeStock},
		}
		require.NoError(t, testDB.ReplaceAllPositions(first))

		second := []*models.PositionRecord{
			{Symbol: "GOOGL", SecType: models.SecTypeStock},
		}
		require.NoError(t, testDB.ReplaceAllPositions(second))

		records, err := testDB.GetAllPositions()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "GOOGL", records[0].Symbol)
	})

	t.Run("GetAllPositions orders by symbol", func(t *testing.T) {
		testDB.TruncateAll(t)

		records := []*models.PositionRecord{
			{Symbol: "MSFT", SecType: models.SecTypeStock},
			{Symbol: "AAPL", SecType: models.SecTypeStock},
			{Symbol: "GOOGL", SecType: models.SecTypeStock},
		}
		require.NoError(t, testDB.ReplaceAllPositions(records))

		retrieved, err := testDB.GetAllPositions()
		require.NoError(t, err)
		require.Len(t, retrieved, 3)
		assert.Equal(t, "AAPL", retrieved[0].Symbol)
		assert.Equal(t, "GOOGL", retrieved[1].Symbol)
		assert.Equal(t, "MSFT", retrieved[2].Symbol)
	})

	t.Run("GetPositionBySymbol round-trips option columns", func(t *testing.T) {
		testDB.TruncateAll(t)

		// Store a record built the way the consumer builds them.
		holdings, err := positions.Parse(`{"items": [
			{"sec_type": 2, "symbol": "OSCR260116P00016000", "quantity": 2, "last": 0.45, "market_value": 90}
		]}`)
		require.NoError(t, err)

		records := make([]*models.PositionRecord, len(holdings))
		for i, h := range holdings {
			records[i] = models.NewPositionRecord(h)
		}
		require.NoError(t, testDB.ReplaceAllPositions(records))

		retrieved, err := testDB.GetPositionBySymbol("OSCR260116P00016000")
		require.NoError(t, err)
		assert.Equal(t, "OSCR", retrieved.Ticker)
		assert.Equal(t, models.OptionTypePut, retrieved.OptionType)
		assert.True(t, decimal.RequireFromString("16").Equal(retrieved.Strike))
		require.NotNil(t, retrieved.Expiration)
		assert.Equal(t, time.January, retrieved.Expiration.Month())
		assert.True(t, decimal.RequireFromString("0.9").Equal(retrieved.CurrentValue))
	})

	t.Run("GetPositionBySymbol returns error when absent", func(t *testing.T) {
		testDB.TruncateAll(t)

		_, err := testDB.GetPositionBySymbol("NOPE")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
