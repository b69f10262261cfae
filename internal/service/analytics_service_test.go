package service

import (
	"context"
	"testing"
	"time"

	"github.com/yourorg/trading-journal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Monday 10:00 UTC
var anBase = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func newAnalyticsService(trades []model.ClosedTrade, specs map[string]model.AssetSpec) *AnalyticsService {
	return NewAnalyticsService(
		&stubTradeReader{trades: trades},
		&stubAccountReader{account: &model.AccountConfig{ID: 1, UserID: 7, InitialBalance: 10000}},
		&stubAssetReader{specs: specs},
		zap.NewNop(),
	)
}

func TestGetAnalytics_BucketsAlwaysComplete(t *testing.T) {
	trades := []model.ClosedTrade{
		{
			AccountID:  1,
			Asset:      "EURUSD",
			Direction:  model.DirectionBuy,
			EntryDate:  anBase,
			ExitDate:   anBase.Add(2 * time.Hour),
			EntryPrice: 1.0800,
			ExitPrice:  1.0850,
			ProfitLoss: 500,
			Result:     model.ResultWin,
		},
	}
	svc := newAnalyticsService(trades, nil)

	report, err := svc.GetAnalytics(context.Background(), 1, nil, nil)
	require.NoError(t, err)

	require.Len(t, report.ByDayOfWeek, 7)
	require.Len(t, report.ByHourOfDay, 24)

	for day, bucket := range report.ByDayOfWeek {
		assert.Equal(t, day, bucket.DayOfWeek)
		if day == 1 { // Monday
			assert.Equal(t, 1, bucket.TotalTrades)
			assert.Equal(t, 500.0, bucket.NetPL)
			assert.Equal(t, "Monday", bucket.Day)
		} else {
			assert.Equal(t, 0, bucket.TotalTrades)
			assert.Equal(t, 0.0, bucket.NetPL)
		}
	}

	for hour, bucket := range report.ByHourOfDay {
		assert.Equal(t, hour, bucket.Hour)
		if hour == 10 {
			assert.Equal(t, 1, bucket.TotalTrades)
			assert.Equal(t, 500.0, bucket.NetPL)
		} else {
			assert.Equal(t, 0, bucket.TotalTrades)
			assert.Equal(t, 0.0, bucket.NetPL)
		}
	}
}

func TestGetAnalytics_PipNormalization(t *testing.T) {
	trades := []model.ClosedTrade{
		{
			AccountID:  1,
			Asset:      "EURUSD",
			Direction:  model.DirectionBuy,
			EntryDate:  anBase,
			ExitDate:   anBase.Add(time.Hour),
			EntryPrice: 1.0800,
			ExitPrice:  1.0850,
			ProfitLoss: 500,
			Result:     model.ResultWin,
		},
		{
			AccountID:  1,
			Asset:      "EURUSD",
			Direction:  model.DirectionSell,
			EntryDate:  anBase.Add(2 * time.Hour),
			ExitDate:   anBase.Add(3 * time.Hour),
			EntryPrice: 1.0850,
			ExitPrice:  1.0830,
			ProfitLoss: 200,
			Result:     model.ResultWin,
		},
		{
			// No spec for this symbol: pip size defaults to 1
			AccountID:  1,
			Asset:      "US30",
			Direction:  model.DirectionBuy,
			EntryDate:  anBase.Add(4 * time.Hour),
			ExitDate:   anBase.Add(5 * time.Hour),
			EntryPrice: 38000,
			ExitPrice:  38070,
			ProfitLoss: 70,
			Result:     model.ResultWin,
		},
	}
	specs := map[string]model.AssetSpec{
		"EURUSD": {Symbol: "EURUSD", PipSize: 0.0001},
	}
	svc := newAnalyticsService(trades, specs)

	report, err := svc.GetAnalytics(context.Background(), 1, nil, nil)
	require.NoError(t, err)

	// 50 pips long + 20 pips short + 70 points
	assert.InDelta(t, 140.0, report.TotalPips, 0.0001)
	assert.InDelta(t, 140.0/3, report.AveragePips, 0.0001)

	require.Len(t, report.ByAsset, 2)
	eurusd := report.ByAsset[0]
	assert.Equal(t, "EURUSD", eurusd.Asset)
	assert.Equal(t, 2, eurusd.TotalTrades)
	assert.Equal(t, 700.0, eurusd.NetPL)
	assert.Equal(t, 2, eurusd.Wins)
	assert.InDelta(t, 70.0, eurusd.TotalPips, 0.0001)
	assert.Equal(t, 100.0, eurusd.WinRate)
}

func TestGetAnalytics_SingleValueMetrics(t *testing.T) {
	trades := []model.ClosedTrade{
		{
			AccountID:  1,
			Asset:      "EURUSD",
			Direction:  model.DirectionBuy,
			EntryDate:  anBase,
			ExitDate:   anBase.Add(30 * time.Minute),
			ProfitLoss: 300,
			Result:     model.ResultWin,
		},
		{
			AccountID:  1,
			Asset:      "EURUSD",
			Direction:  model.DirectionBuy,
			EntryDate:  anBase.Add(time.Hour),
			ExitDate:   anBase.Add(time.Hour + 90*time.Minute),
			ProfitLoss: -450,
			Result:     model.ResultLoss,
		},
	}
	svc := newAnalyticsService(trades, nil)

	report, err := svc.GetAnalytics(context.Background(), 1, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 300.0, report.LargestWinningTrade)
	assert.Equal(t, -450.0, report.LargestLosingTrade)
	assert.InDelta(t, 60.0, report.AverageTradeDurationMinutes, 0.0001)
}

func TestGetAnalytics_LossOnlySetKeepsWinFloorAtZero(t *testing.T) {
	trades := []model.ClosedTrade{
		{
			AccountID:  1,
			Asset:      "EURUSD",
			Direction:  model.DirectionBuy,
			EntryDate:  anBase,
			ExitDate:   anBase.Add(time.Hour),
			ProfitLoss: -120,
			Result:     model.ResultLoss,
		},
	}
	svc := newAnalyticsService(trades, nil)

	report, err := svc.GetAnalytics(context.Background(), 1, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.LargestWinningTrade)
	assert.Equal(t, -120.0, report.LargestLosingTrade)
}

func TestGetAnalytics_DateWindowEndInclusive(t *testing.T) {
	day1 := anBase
	day2 := anBase.AddDate(0, 0, 1)
	day3 := anBase.AddDate(0, 0, 2)
	trades := []model.ClosedTrade{
		tradeAt(100, day1, model.ResultWin),
		tradeAt(200, day2, model.ResultWin),
		tradeAt(300, day3, model.ResultWin),
	}
	svc := newAnalyticsService(trades, nil)

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	report, err := svc.GetAnalytics(context.Background(), 1, &start, &end)
	require.NoError(t, err)

	// End day is inclusive; the day-3 trade falls outside the window
	assert.Equal(t, 2, report.TotalTrades)
}

func TestGetAnalytics_InvalidDateRange(t *testing.T) {
	svc := newAnalyticsService(nil, nil)

	start := anBase
	end := anBase.AddDate(0, 0, -3)
	_, err := svc.GetAnalytics(context.Background(), 1, &start, &end)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestGetAnalytics_EmptySetBaseline(t *testing.T) {
	svc := newAnalyticsService(nil, nil)

	report, err := svc.GetAnalytics(context.Background(), 1, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalTrades)
	assert.Equal(t, 0.0, report.TotalPips)
	assert.Empty(t, report.ByAsset)
	assert.Len(t, report.ByDayOfWeek, 7)
	assert.Len(t, report.ByHourOfDay, 24)
}

func TestGetAnalytics_AccountNotFound(t *testing.T) {
	svc := NewAnalyticsService(
		&stubTradeReader{},
		&stubAccountReader{},
		&stubAssetReader{},
		zap.NewNop(),
	)

	_, err := svc.GetAnalytics(context.Background(), 99, nil, nil)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
