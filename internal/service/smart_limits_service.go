package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yourorg/trading-journal/internal/analytics"
	"github.com/yourorg/trading-journal/internal/model"

	"go.uber.org/zap"
)

// SmartLimitService is the admission-control gate evaluated before a new
// trade is persisted. The check is read-then-decide against the ledger at
// call time; the actual write happens in the trade service, so concurrent
// creations for the same account can race past the count check.
type SmartLimitService struct {
	trades   TradeReader
	accounts AccountReader
	logger   *zap.Logger
	now      func() time.Time
}

// NewSmartLimitService creates a new smart limit service
func NewSmartLimitService(trades TradeReader, accounts AccountReader, logger *zap.Logger) *SmartLimitService {
	return &SmartLimitService{
		trades:   trades,
		accounts: accounts,
		logger:   logger,
		now:      time.Now,
	}
}

// CheckLimits evaluates the account's smart limits against the proposed
// trade risk and today's UTC-day trade counts. A blocked result is a
// normal business outcome returned in the status; only the per-trade risk
// cap is fatal to the create call and returned as a RiskLimitError.
func (s *SmartLimitService) CheckLimits(
	ctx context.Context,
	accountID int,
	riskPercentage float64,
) (*model.SmartLimitStatus, error) {
	if riskPercentage < 0 {
		return nil, ErrNegativeRisk
	}

	account, err := s.accounts.GetAccountConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	config, err := s.accounts.GetSmartLimitConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if config == nil || !config.IsEnabled {
		return &model.SmartLimitStatus{}, nil
	}

	if config.MaxRiskPerTrade != nil && riskPercentage > *config.MaxRiskPerTrade {
		return nil, &RiskLimitError{Risk: riskPercentage, Limit: *config.MaxRiskPerTrade}
	}

	dayStart, dayEnd := analytics.DayWindowUTC(s.now())
	tradesToday, lossesToday, err := s.trades.CountTradesEntered(ctx, accountID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	status := &model.SmartLimitStatus{
		TradesToday:     tradesToday,
		LossesToday:     lossesToday,
		MaxRiskPerTrade: config.MaxRiskPerTrade,
		MaxTradesPerDay: config.MaxTradesPerDay,
		MaxLossesPerDay: config.MaxLossesPerDay,
	}

	if config.MaxTradesPerDay != nil && tradesToday >= *config.MaxTradesPerDay {
		status.IsTradeCreationBlocked = true
		status.BlockReason = fmt.Sprintf("Daily trade limit of %d reached.", *config.MaxTradesPerDay)
	} else if config.MaxLossesPerDay != nil && lossesToday >= *config.MaxLossesPerDay {
		status.IsTradeCreationBlocked = true
		status.BlockReason = fmt.Sprintf("Daily loss limit of %d reached.", *config.MaxLossesPerDay)
	}

	if status.IsTradeCreationBlocked {
		s.logger.Info("Trade creation blocked by smart limits",
			zap.Int("accountID", accountID),
			zap.String("reason", status.BlockReason))
	}

	return status, nil
}
