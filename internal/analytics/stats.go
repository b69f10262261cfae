package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yourorg/trading-journal/internal/model"
)

// UnassignedSetupName labels the breakdown bucket for trades without a
// playbook setup
const UnassignedSetupName = "Unassigned / General"

const dayFormat = "2006-01-02"

// ComputeStats calculates the full statistics report for a set of closed
// trades sorted ascending by exit date. All calendar-day groupings use UTC.
// An empty trade set returns the explicit zero-valued baseline with an
// empty equity curve, never NaN.
func ComputeStats(trades []model.ClosedTrade, initialBalance float64) *model.StatsReport {
	report := &model.StatsReport{
		TotalTrades:    len(trades),
		EquityCurve:    []model.EquityPoint{},
		SetupBreakdown: []model.SetupStats{},
	}

	if len(trades) == 0 {
		return report
	}

	for _, t := range trades {
		switch t.Result {
		case model.ResultWin:
			report.WinningTrades++
			report.GrossProfit += t.ProfitLoss
		case model.ResultLoss:
			report.LosingTrades++
			report.GrossLoss += t.ProfitLoss
		case model.ResultBreakeven:
			report.BreakevenTrades++
		}
		report.TotalCommission += t.Commission
		report.TotalSwap += t.Swap
	}
	report.GrossLoss = math.Abs(report.GrossLoss)
	report.NetProfitLoss = report.GrossProfit - report.GrossLoss -
		report.TotalCommission - report.TotalSwap

	// Breakeven trades are excluded from the win-rate denominator
	decided := report.WinningTrades + report.LosingTrades
	if decided > 0 {
		report.WinRate = float64(report.WinningTrades) / float64(decided) * 100
	}

	if report.WinningTrades > 0 {
		report.AverageWin = report.GrossProfit / float64(report.WinningTrades)
	}
	if report.LosingTrades > 0 {
		report.AverageLoss = report.GrossLoss / float64(report.LosingTrades)
	}

	if report.GrossLoss > 0 {
		report.ProfitFactor = model.Ratio(report.GrossProfit / report.GrossLoss)
	} else if report.GrossProfit > 0 {
		report.ProfitFactor = model.Ratio(math.Inf(1))
	}

	winFraction := report.WinRate / 100
	report.Expectancy = winFraction*report.AverageWin - (1-winFraction)*report.AverageLoss

	if report.AverageLoss > 0 {
		report.RiskRewardRatio = report.AverageWin / report.AverageLoss
	}

	report.EquityCurve = BuildEquityCurve(trades, initialBalance)
	report.MaxDrawdown, report.MaxDrawdownPercent = MaxDrawdown(report.EquityCurve)

	if report.MaxDrawdown > 0 {
		report.RecoveryFactor = model.Ratio(report.NetProfitLoss / report.MaxDrawdown)
	} else if report.NetProfitLoss > 0 {
		report.RecoveryFactor = model.Ratio(math.Inf(1))
	}

	days := dailyProfitLoss(trades)
	report.LargestDailyLoss = largestDailyLoss(days)
	report.UniqueTradingDays = len(days)
	if report.UniqueTradingDays > 0 {
		report.TradesPerDay = float64(report.TotalTrades) / float64(report.UniqueTradingDays)
	}
	report.MaxConsecutiveProfitableDays = maxConsecutiveProfitableDays(days)
	report.CurrentStreak = currentStreak(trades)
	report.AverageHoldTimeHours = averageHoldTimeHours(trades)
	report.SetupBreakdown = setupBreakdown(trades)

	return report
}

// MaxDrawdown returns the largest peak-to-balance decline on the curve and
// that decline as a percentage of the peak it was measured from. The
// high-water-mark definition applies regardless of the account's
// configured drawdown type.
func MaxDrawdown(curve []model.EquityPoint) (float64, float64) {
	var maxDD, peakAtMax float64
	for _, p := range curve {
		dd := p.Peak - p.Balance
		if dd > maxDD {
			maxDD = dd
			peakAtMax = p.Peak
		}
	}
	if maxDD > 0 && peakAtMax > 0 {
		return maxDD, maxDD / peakAtMax * 100
	}
	return maxDD, 0
}

// dailyProfitLoss sums raw profit/loss per distinct UTC calendar day
func dailyProfitLoss(trades []model.ClosedTrade) map[string]float64 {
	days := make(map[string]float64)
	for _, t := range trades {
		day := t.ExitDate.UTC().Format(dayFormat)
		days[day] += t.ProfitLoss
	}
	return days
}

// largestDailyLoss reports the largest magnitude among negative-sum days,
// or 0 when no day closed negative
func largestDailyLoss(days map[string]float64) float64 {
	var worst float64
	for _, pl := range days {
		if pl < worst {
			worst = pl
		}
	}
	return math.Abs(worst)
}

// maxConsecutiveProfitableDays scans the distinct traded days in ascending
// order and returns the longest contiguous run of positive-sum days. The
// run is contiguous in the sorted-day sequence, not in calendar time: a
// weekend gap between two profitable days does not break the run.
func maxConsecutiveProfitableDays(days map[string]float64) int {
	keys := make([]string, 0, len(days))
	for day := range days {
		keys = append(keys, day)
	}
	sort.Strings(keys)

	var longest, current int
	for _, day := range keys {
		if days[day] > 0 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

// currentStreak counts consecutive wins (positive) or losses (negative)
// scanning backward from the most recent exit. The scan stops at the first
// breakeven trade or sign reversal without including it.
func currentStreak(trades []model.ClosedTrade) int {
	streak := 0
	for i := len(trades) - 1; i >= 0; i-- {
		switch trades[i].Result {
		case model.ResultWin:
			if streak < 0 {
				return streak
			}
			streak++
		case model.ResultLoss:
			if streak > 0 {
				return streak
			}
			streak--
		default:
			return streak
		}
	}
	return streak
}

// averageHoldTimeHours is the mean trade duration over trades carrying
// both entry and exit dates
func averageHoldTimeHours(trades []model.ClosedTrade) float64 {
	var totalHours float64
	var counted int
	for _, t := range trades {
		if t.EntryDate.IsZero() || t.ExitDate.IsZero() {
			continue
		}
		totalHours += t.ExitDate.Sub(t.EntryDate).Hours()
		counted++
	}
	if counted == 0 {
		return 0
	}
	return totalHours / float64(counted)
}

// setupBreakdown groups trades by playbook setup in first-seen order.
// Trades without a setup fall into the "Unassigned / General" bucket.
// Bucket net PL is net of the bucket's commission and swap.
func setupBreakdown(trades []model.ClosedTrade) []model.SetupStats {
	type bucket struct {
		stats  model.SetupStats
		wins   int
		losses int
	}

	order := make([]string, 0)
	buckets := make(map[string]*bucket)

	for _, t := range trades {
		key := UnassignedSetupName
		if t.PlaybookSetupID != nil {
			key = fmt.Sprintf("setup-%d", *t.PlaybookSetupID)
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{stats: model.SetupStats{SetupName: UnassignedSetupName}}
			if t.PlaybookSetupID != nil {
				id := *t.PlaybookSetupID
				b.stats.SetupID = &id
				b.stats.SetupName = fmt.Sprintf("Setup %d", id)
			}
			buckets[key] = b
			order = append(order, key)
		}

		b.stats.TotalTrades++
		b.stats.NetPL += t.ProfitLoss - t.Commission - t.Swap
		switch t.Result {
		case model.ResultWin:
			b.wins++
		case model.ResultLoss:
			b.losses++
		}
	}

	result := make([]model.SetupStats, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		if decided := b.wins + b.losses; decided > 0 {
			b.stats.WinRate = float64(b.wins) / float64(decided) * 100
		}
		result = append(result, b.stats)
	}
	return result
}

// DayWindowUTC returns the UTC midnight boundaries of the calendar day
// containing the given instant
func DayWindowUTC(at time.Time) (time.Time, time.Time) {
	at = at.UTC()
	start := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
