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

var slBase = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func newSmartLimitService(trades []model.ClosedTrade, limits *model.SmartLimitConfig) *SmartLimitService {
	svc := NewSmartLimitService(
		&stubTradeReader{trades: trades},
		&stubAccountReader{
			account: &model.AccountConfig{ID: 1, InitialBalance: 10000},
			limits:  limits,
		},
		zap.NewNop(),
	)
	svc.now = func() time.Time { return slBase.Add(5 * time.Hour) }
	return svc
}

func enteredTrade(entry time.Time, result model.TradeResult) model.ClosedTrade {
	return model.ClosedTrade{
		AccountID: 1,
		Asset:     "EURUSD",
		EntryDate: entry,
		ExitDate:  entry.Add(30 * time.Minute),
		Result:    result,
	}
}

func TestCheckLimits_DisabledAlwaysAllows(t *testing.T) {
	trades := []model.ClosedTrade{
		enteredTrade(slBase, model.ResultLoss),
	}
	svc := newSmartLimitService(trades, &model.SmartLimitConfig{IsEnabled: false})

	status, err := svc.CheckLimits(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.False(t, status.IsTradeCreationBlocked)
}

func TestCheckLimits_NoConfigAllows(t *testing.T) {
	svc := newSmartLimitService(nil, nil)

	status, err := svc.CheckLimits(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, status.IsTradeCreationBlocked)
}

func TestCheckLimits_RiskCapRejects(t *testing.T) {
	svc := newSmartLimitService(nil, &model.SmartLimitConfig{
		IsEnabled:       true,
		MaxRiskPerTrade: floatPtr(2),
	})

	_, err := svc.CheckLimits(context.Background(), 1, 3.5)
	var riskErr *RiskLimitError
	require.ErrorAs(t, err, &riskErr)
	assert.Equal(t, 3.5, riskErr.Risk)
	assert.Equal(t, 2.0, riskErr.Limit)
}

func TestCheckLimits_DailyTradeLimit(t *testing.T) {
	trades := []model.ClosedTrade{
		enteredTrade(slBase, model.ResultWin),
		enteredTrade(slBase.Add(time.Hour), model.ResultLoss),
		enteredTrade(slBase.Add(2*time.Hour), model.ResultWin),
	}
	svc := newSmartLimitService(trades, &model.SmartLimitConfig{
		IsEnabled:       true,
		MaxTradesPerDay: intPtr(3),
	})

	status, err := svc.CheckLimits(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, status.TradesToday)
	assert.True(t, status.IsTradeCreationBlocked)
	assert.Contains(t, status.BlockReason, "Daily trade limit of 3 reached.")
}

func TestCheckLimits_DailyLossLimit(t *testing.T) {
	trades := []model.ClosedTrade{
		enteredTrade(slBase, model.ResultLoss),
		enteredTrade(slBase.Add(time.Hour), model.ResultLoss),
		enteredTrade(slBase.Add(2*time.Hour), model.ResultWin),
	}
	svc := newSmartLimitService(trades, &model.SmartLimitConfig{
		IsEnabled:       true,
		MaxTradesPerDay: intPtr(10),
		MaxLossesPerDay: intPtr(2),
	})

	status, err := svc.CheckLimits(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, status.TradesToday)
	assert.Equal(t, 2, status.LossesToday)
	assert.True(t, status.IsTradeCreationBlocked)
	assert.Contains(t, status.BlockReason, "Daily loss limit of 2 reached.")
}

func TestCheckLimits_CountsOnlyTodayUTC(t *testing.T) {
	trades := []model.ClosedTrade{
		enteredTrade(slBase.AddDate(0, 0, -1), model.ResultLoss), // yesterday
		enteredTrade(slBase, model.ResultWin),
	}
	svc := newSmartLimitService(trades, &model.SmartLimitConfig{
		IsEnabled:       true,
		MaxTradesPerDay: intPtr(2),
	})

	status, err := svc.CheckLimits(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, status.TradesToday)
	assert.False(t, status.IsTradeCreationBlocked)
}

func TestCheckLimits_NegativeRisk(t *testing.T) {
	svc := newSmartLimitService(nil, nil)

	_, err := svc.CheckLimits(context.Background(), 1, -1)
	assert.ErrorIs(t, err, ErrNegativeRisk)
}

func TestCheckLimits_AccountNotFound(t *testing.T) {
	svc := NewSmartLimitService(
		&stubTradeReader{},
		&stubAccountReader{},
		zap.NewNop(),
	)

	_, err := svc.CheckLimits(context.Background(), 9, 1)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
