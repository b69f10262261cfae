package model

import "time"

// ComplianceReport is the drawdown view of an account measured against its
// configured objectives. Drawdown figures are reported as non-negative
// magnitudes even though internal accumulation is negative.
type ComplianceReport struct {
	AccountID            int     `json:"account_id"`
	TotalProfitLoss      float64 `json:"total_profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`

	ProfitTarget          *float64 `json:"profit_target,omitempty"`
	ProfitTargetProgress  float64  `json:"profit_target_progress"`
	ProfitTargetRemaining float64  `json:"profit_target_remaining"`

	CurrentMaxDrawdown     float64  `json:"current_max_drawdown"`
	MaxDrawdownLimit       *float64 `json:"max_drawdown_limit,omitempty"`
	MaxDrawdownUsedPercent float64  `json:"max_drawdown_used_percent"`

	CurrentDailyDrawdown     float64  `json:"current_daily_drawdown"`
	DailyDrawdownLimit       *float64 `json:"daily_drawdown_limit,omitempty"`
	DailyDrawdownUsedPercent float64  `json:"daily_drawdown_used_percent"`

	DaysTradedCount    int     `json:"days_traded_count"`
	MinTradingDays     *int    `json:"min_trading_days,omitempty"`
	DaysTradedProgress float64 `json:"days_traded_progress"`

	IsCompliant bool     `json:"is_compliant"`
	Violations  []string `json:"violations"`
}

// Objective progress statuses shown on the challenge dashboard
const (
	ObjectiveStatusSuccess    = "Success"
	ObjectiveStatusFailed     = "Failed"
	ObjectiveStatusInProgress = "In Progress"
)

// Objective names
const (
	ObjectiveProfitTarget   = "profitTarget"
	ObjectiveMinTradingDays = "minTradingDays"
	ObjectiveMaxLoss        = "maxLoss"
	ObjectiveMaxDailyLoss   = "maxDailyLoss"
)

// ObjectiveProgress is one named challenge objective with its progress
type ObjectiveProgress struct {
	Name         string  `json:"name"`
	CurrentValue float64 `json:"current_value"`
	TargetValue  float64 `json:"target_value"`
	Status       string  `json:"status"`
}

// SmartLimitStatus is the result of a smart-limits admission check. A
// blocked trade is an expected business outcome, not an error; callers
// branch on IsTradeCreationBlocked.
type SmartLimitStatus struct {
	TradesToday            int      `json:"trades_today"`
	LossesToday            int      `json:"losses_today"`
	IsTradeCreationBlocked bool     `json:"is_trade_creation_blocked"`
	BlockReason            string   `json:"block_reason,omitempty"`
	MaxRiskPerTrade        *float64 `json:"max_risk_per_trade,omitempty"`
	MaxTradesPerDay        *int     `json:"max_trades_per_day,omitempty"`
	MaxLossesPerDay        *int     `json:"max_losses_per_day,omitempty"`
}

// ComplianceEvent is published to Kafka when a drawdown calculation finds
// an account in violation of its objectives
type ComplianceEvent struct {
	AccountID  int       `json:"account_id"`
	Violations []string  `json:"violations"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AssetPerformance aggregates closed trades for one instrument
type AssetPerformance struct {
	Asset       string  `json:"asset"`
	TotalTrades int     `json:"total_trades"`
	NetPL       float64 `json:"net_pl"`
	Wins        int     `json:"wins"`
	TotalPips   float64 `json:"total_pips"`
	WinRate     float64 `json:"win_rate"`
}

// DayOfWeekPerformance aggregates trades entered on one UTC weekday
// (0 = Sunday .. 6 = Saturday)
type DayOfWeekPerformance struct {
	DayOfWeek   int     `json:"day_of_week"`
	Day         string  `json:"day"`
	NetPL       float64 `json:"net_pl"`
	TotalTrades int     `json:"total_trades"`
}

// HourOfDayPerformance aggregates trades entered during one UTC hour
type HourOfDayPerformance struct {
	Hour        int     `json:"hour"`
	NetPL       float64 `json:"net_pl"`
	TotalTrades int     `json:"total_trades"`
}

// AnalyticsReport is the time-bucketed analytics view for an account
type AnalyticsReport struct {
	TotalTrades                 int                    `json:"total_trades"`
	LargestWinningTrade         float64                `json:"largest_winning_trade"`
	LargestLosingTrade          float64                `json:"largest_losing_trade"`
	TotalPips                   float64                `json:"total_pips"`
	AveragePips                 float64                `json:"average_pips"`
	AverageTradeDurationMinutes float64                `json:"average_trade_duration_minutes"`
	ByAsset                     []AssetPerformance     `json:"by_asset"`
	ByDayOfWeek                 []DayOfWeekPerformance `json:"by_day_of_week"`
	ByHourOfDay                 []HourOfDayPerformance `json:"by_hour_of_day"`
}
