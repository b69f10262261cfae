package service

import (
	"context"

	"github.com/yourorg/trading-journal/internal/analytics"
	"github.com/yourorg/trading-journal/internal/model"

	"go.uber.org/zap"
)

// StatsService computes trading statistics for accounts and playbooks
type StatsService struct {
	trades   TradeReader
	accounts AccountReader
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(trades TradeReader, accounts AccountReader, logger *zap.Logger) *StatsService {
	return &StatsService{
		trades:   trades,
		accounts: accounts,
		logger:   logger,
	}
}

// GetAccountStats computes the full statistics report for an account's
// closed trades
func (s *StatsService) GetAccountStats(
	ctx context.Context,
	accountID int,
) (*model.StatsReport, error) {
	account, err := s.accounts.GetAccountConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	trades, err := s.trades.ListClosedTrades(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return analytics.ComputeStats(trades, account.InitialBalance), nil
}

// GetPlaybookStats computes statistics across all closed trades recorded
// against a playbook. Playbooks carry no balance of their own, so the
// equity curve starts from zero.
func (s *StatsService) GetPlaybookStats(
	ctx context.Context,
	playbookID int,
) (*model.StatsReport, error) {
	trades, err := s.trades.ListClosedTradesByPlaybook(ctx, playbookID)
	if err != nil {
		return nil, err
	}

	return analytics.ComputeStats(trades, 0), nil
}
