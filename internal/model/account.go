package model

// DrawdownType selects the reference balance for drawdown measurement
type DrawdownType string

const (
	// DrawdownStatic measures decline from the initial balance
	DrawdownStatic DrawdownType = "STATIC"
	// DrawdownTrailing measures decline from the highest balance reached
	DrawdownTrailing DrawdownType = "TRAILING"
)

// AccountConfig represents a broker account's balance configuration.
// CurrentBalance is maintained by the trade-write service as
// initialBalance plus the sum of closed-trade profit/loss.
type AccountConfig struct {
	ID             int          `json:"id" db:"id"`
	UserID         int          `json:"user_id" db:"user_id"`
	InitialBalance float64      `json:"initial_balance" db:"initial_balance"`
	CurrentBalance float64      `json:"current_balance" db:"current_balance"`
	Currency       string       `json:"currency" db:"currency"`
	DrawdownType   DrawdownType `json:"drawdown_type" db:"drawdown_type"`
}

// ObjectiveConfig holds prop-firm challenge objectives for an account.
// An account-level override takes precedence over the firm template.
type ObjectiveConfig struct {
	IsEnabled      bool     `json:"is_enabled" db:"is_enabled"`
	ProfitTarget   *float64 `json:"profit_target,omitempty" db:"profit_target"`
	MinTradingDays *int     `json:"min_trading_days,omitempty" db:"min_trading_days"`
	MaxLoss        *float64 `json:"max_loss,omitempty" db:"max_loss"`
	MaxDailyLoss   *float64 `json:"max_daily_loss,omitempty" db:"max_daily_loss"`
}

// SmartLimitConfig holds per-account guardrails enforced at trade creation
type SmartLimitConfig struct {
	IsEnabled       bool     `json:"is_enabled" db:"is_enabled"`
	MaxRiskPerTrade *float64 `json:"max_risk_per_trade,omitempty" db:"max_risk_per_trade"`
	MaxTradesPerDay *int     `json:"max_trades_per_day,omitempty" db:"max_trades_per_day"`
	MaxLossesPerDay *int     `json:"max_losses_per_day,omitempty" db:"max_losses_per_day"`
}
