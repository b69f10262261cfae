package analytics

import (
	"github.com/yourorg/trading-journal/internal/model"
)

// BuildEquityCurve walks closed trades in exit-time order and produces the
// running balance and high-water-mark after each trade. The input slice is
// not modified; callers must pass trades sorted ascending by exit date.
// An empty input yields an empty curve with the peak at the initial balance.
func BuildEquityCurve(trades []model.ClosedTrade, initialBalance float64) []model.EquityPoint {
	curve := make([]model.EquityPoint, 0, len(trades))

	balance := initialBalance
	peak := initialBalance
	cumulative := 0.0

	for _, trade := range trades {
		balance += trade.ProfitLoss
		cumulative += trade.ProfitLoss
		if balance > peak {
			peak = balance
		}

		curve = append(curve, model.EquityPoint{
			Timestamp:    trade.ExitDate,
			CumulativePL: cumulative,
			Balance:      balance,
			Peak:         peak,
		})
	}

	return curve
}
