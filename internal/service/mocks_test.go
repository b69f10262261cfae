package service

import (
	"context"
	"time"

	"github.com/yourorg/trading-journal/internal/model"
)

// stubTradeReader serves a fixed trade slice
type stubTradeReader struct {
	trades []model.ClosedTrade
	err    error
}

func (s *stubTradeReader) ListClosedTrades(ctx context.Context, accountID int) ([]model.ClosedTrade, error) {
	return s.trades, s.err
}

func (s *stubTradeReader) ListClosedTradesByPlaybook(ctx context.Context, playbookID int) ([]model.ClosedTrade, error) {
	return s.trades, s.err
}

func (s *stubTradeReader) ListClosedTradesBetween(ctx context.Context, accountID int, start, end time.Time) ([]model.ClosedTrade, error) {
	if s.err != nil {
		return nil, s.err
	}
	var filtered []model.ClosedTrade
	for _, t := range s.trades {
		if !t.ExitDate.Before(start) && t.ExitDate.Before(end) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *stubTradeReader) CountTradesEntered(ctx context.Context, accountID int, start, end time.Time) (int, int, error) {
	if s.err != nil {
		return 0, 0, s.err
	}
	var total, losses int
	for _, t := range s.trades {
		if !t.EntryDate.Before(start) && t.EntryDate.Before(end) {
			total++
			if t.Result == model.ResultLoss {
				losses++
			}
		}
	}
	return total, losses, nil
}

// stubAccountReader serves fixed configuration rows
type stubAccountReader struct {
	account   *model.AccountConfig
	objective *model.ObjectiveConfig
	limits    *model.SmartLimitConfig
	err       error
}

func (s *stubAccountReader) GetAccountConfig(ctx context.Context, accountID int) (*model.AccountConfig, error) {
	return s.account, s.err
}

func (s *stubAccountReader) GetObjectiveConfig(ctx context.Context, accountID int) (*model.ObjectiveConfig, error) {
	return s.objective, s.err
}

func (s *stubAccountReader) GetSmartLimitConfig(ctx context.Context, accountID int) (*model.SmartLimitConfig, error) {
	return s.limits, s.err
}

// stubAssetReader serves a fixed spec map
type stubAssetReader struct {
	specs map[string]model.AssetSpec
}

func (s *stubAssetReader) GetAssetSpecs(ctx context.Context, userID int) (map[string]model.AssetSpec, error) {
	return s.specs, nil
}

// stubPublisher records published compliance events
type stubPublisher struct {
	events []model.ComplianceEvent
}

func (s *stubPublisher) PublishComplianceEvent(ctx context.Context, event model.ComplianceEvent) error {
	s.events = append(s.events, event)
	return nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func tradeAt(pl float64, exit time.Time, result model.TradeResult) model.ClosedTrade {
	return model.ClosedTrade{
		AccountID:  1,
		Asset:      "EURUSD",
		Direction:  model.DirectionBuy,
		EntryDate:  exit.Add(-time.Hour),
		ExitDate:   exit,
		ProfitLoss: pl,
		Result:     result,
	}
}
