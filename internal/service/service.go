package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourorg/trading-journal/internal/model"
)

// Sentinel errors shared by the analytics services. Account lookups that
// find nothing propagate ErrAccountNotFound to the handler unmodified.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrInvalidDateRange = errors.New("end date must be on or after start date")
	ErrNegativeRisk     = errors.New("risk percentage cannot be negative")
)

// RiskLimitError rejects a trade-creation call whose proposed risk exceeds
// the account's per-trade maximum. Unlike daily-count blocks, this is
// fatal to the create call and not reported via SmartLimitStatus.
type RiskLimitError struct {
	Risk  float64
	Limit float64
}

func (e *RiskLimitError) Error() string {
	return fmt.Sprintf("risk of %.2f%% exceeds the maximum %.2f%% allowed per trade", e.Risk, e.Limit)
}

// TradeReader supplies closed trades from the journal ledger
type TradeReader interface {
	ListClosedTrades(ctx context.Context, accountID int) ([]model.ClosedTrade, error)
	ListClosedTradesByPlaybook(ctx context.Context, playbookID int) ([]model.ClosedTrade, error)
	ListClosedTradesBetween(ctx context.Context, accountID int, start, end time.Time) ([]model.ClosedTrade, error)
	CountTradesEntered(ctx context.Context, accountID int, start, end time.Time) (int, int, error)
}

// AccountReader supplies account, objective, and smart-limit configuration
type AccountReader interface {
	GetAccountConfig(ctx context.Context, accountID int) (*model.AccountConfig, error)
	GetObjectiveConfig(ctx context.Context, accountID int) (*model.ObjectiveConfig, error)
	GetSmartLimitConfig(ctx context.Context, accountID int) (*model.SmartLimitConfig, error)
}

// AssetReader supplies instrument specs for pip normalization
type AssetReader interface {
	GetAssetSpecs(ctx context.Context, userID int) (map[string]model.AssetSpec, error)
}

// EventPublisher publishes compliance violation events
type EventPublisher interface {
	PublishComplianceEvent(ctx context.Context, event model.ComplianceEvent) error
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
