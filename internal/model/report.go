package model

import (
	"encoding/json"
	"math"
	"time"
)

// Ratio is a float64 that survives JSON encoding when infinite. Profit
// factor and recovery factor are defined as +Inf when there are no losses
// or no drawdown, and encoding/json rejects raw infinities.
type Ratio float64

// MarshalJSON encodes infinities as the strings "Infinity"/"-Infinity"
func (r Ratio) MarshalJSON() ([]byte, error) {
	v := float64(r)
	if math.IsInf(v, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts either a number or the infinity strings
func (r *Ratio) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Infinity"`:
		*r = Ratio(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*r = Ratio(math.Inf(-1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ratio(v)
	return nil
}

// EquityPoint is one step of the equity curve, recorded after each closed
// trade in exit-time order
type EquityPoint struct {
	Timestamp    time.Time `json:"timestamp"`
	CumulativePL float64   `json:"cumulative_pl"`
	Balance      float64   `json:"balance"`
	Peak         float64   `json:"peak"`
}

// SetupStats is the per-playbook-setup slice of a stats report
type SetupStats struct {
	SetupID     *int    `json:"setup_id,omitempty"`
	SetupName   string  `json:"setup_name"`
	TotalTrades int     `json:"total_trades"`
	WinRate     float64 `json:"win_rate"`
	NetPL       float64 `json:"net_pl"`
}

// StatsReport contains the full trading statistics for a set of closed
// trades. Every numeric field is zero-valued for an empty trade set.
type StatsReport struct {
	TotalTrades     int `json:"total_trades"`
	WinningTrades   int `json:"winning_trades"`
	LosingTrades    int `json:"losing_trades"`
	BreakevenTrades int `json:"breakeven_trades"`

	GrossProfit     float64 `json:"gross_profit"`
	GrossLoss       float64 `json:"gross_loss"`
	TotalCommission float64 `json:"total_commission"`
	TotalSwap       float64 `json:"total_swap"`
	NetProfitLoss   float64 `json:"net_profit_loss"`

	WinRate         float64 `json:"win_rate"`
	AverageWin      float64 `json:"average_win"`
	AverageLoss     float64 `json:"average_loss"`
	ProfitFactor    Ratio   `json:"profit_factor"`
	Expectancy      float64 `json:"expectancy"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`

	MaxDrawdown        float64 `json:"max_drawdown"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent"`
	LargestDailyLoss   float64 `json:"largest_daily_loss"`
	RecoveryFactor     Ratio   `json:"recovery_factor"`

	UniqueTradingDays            int     `json:"unique_trading_days"`
	TradesPerDay                 float64 `json:"trades_per_day"`
	MaxConsecutiveProfitableDays int     `json:"max_consecutive_profitable_days"`
	CurrentStreak                int     `json:"current_streak"`
	AverageHoldTimeHours         float64 `json:"average_hold_time_hours"`

	EquityCurve    []EquityPoint `json:"equity_curve"`
	SetupBreakdown []SetupStats  `json:"setup_breakdown"`
}
