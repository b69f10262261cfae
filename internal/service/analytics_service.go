package service

import (
	"context"
	"time"

	"github.com/yourorg/trading-journal/internal/model"

	"go.uber.org/zap"
)

var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// AnalyticsService aggregates closed trades by asset, weekday, and hour
type AnalyticsService struct {
	trades   TradeReader
	accounts AccountReader
	assets   AssetReader
	logger   *zap.Logger
	now      func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	trades TradeReader,
	accounts AccountReader,
	assets AssetReader,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		trades:   trades,
		accounts: accounts,
		assets:   assets,
		logger:   logger,
		now:      time.Now,
	}
}

// GetAnalytics computes the time-bucketed analytics report for an
// account's closed trades. When dates are supplied the window is
// [startDate, endDate+1 day) so the end day is inclusive. Bucketing is by
// entry date in UTC; all 7 weekday and 24 hour buckets are always present.
func (s *AnalyticsService) GetAnalytics(
	ctx context.Context,
	accountID int,
	startDate *time.Time,
	endDate *time.Time,
) (*model.AnalyticsReport, error) {
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, ErrInvalidDateRange
	}

	account, err := s.accounts.GetAccountConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	var trades []model.ClosedTrade
	if startDate != nil || endDate != nil {
		start := time.Time{}
		if startDate != nil {
			start = *startDate
		}
		end := s.now().UTC()
		if endDate != nil {
			end = *endDate
		}
		trades, err = s.trades.ListClosedTradesBetween(ctx, accountID, start, end.Add(24*time.Hour))
	} else {
		trades, err = s.trades.ListClosedTrades(ctx, accountID)
	}
	if err != nil {
		return nil, err
	}

	specs, err := s.assets.GetAssetSpecs(ctx, account.UserID)
	if err != nil {
		return nil, err
	}

	return buildAnalyticsReport(trades, specs), nil
}

// buildAnalyticsReport is the pure aggregation over an already-fetched
// trade slice
func buildAnalyticsReport(trades []model.ClosedTrade, specs map[string]model.AssetSpec) *model.AnalyticsReport {
	report := &model.AnalyticsReport{
		TotalTrades: len(trades),
		ByAsset:     []model.AssetPerformance{},
		ByDayOfWeek: make([]model.DayOfWeekPerformance, 7),
		ByHourOfDay: make([]model.HourOfDayPerformance, 24),
	}

	for day := 0; day < 7; day++ {
		report.ByDayOfWeek[day] = model.DayOfWeekPerformance{DayOfWeek: day, Day: dayNames[day]}
	}
	for hour := 0; hour < 24; hour++ {
		report.ByHourOfDay[hour] = model.HourOfDayPerformance{Hour: hour}
	}

	assetOrder := make([]string, 0)
	assetBuckets := make(map[string]*model.AssetPerformance)

	var totalDurationMinutes float64
	var durationCounted int

	for _, t := range trades {
		if t.ProfitLoss > report.LargestWinningTrade {
			report.LargestWinningTrade = t.ProfitLoss
		}
		if t.ProfitLoss < report.LargestLosingTrade {
			report.LargestLosingTrade = t.ProfitLoss
		}

		pips := tradePips(t, specs)
		report.TotalPips += pips

		if !t.EntryDate.IsZero() && !t.ExitDate.IsZero() {
			totalDurationMinutes += t.ExitDate.Sub(t.EntryDate).Minutes()
			durationCounted++
		}

		bucket, ok := assetBuckets[t.Asset]
		if !ok {
			bucket = &model.AssetPerformance{Asset: t.Asset}
			assetBuckets[t.Asset] = bucket
			assetOrder = append(assetOrder, t.Asset)
		}
		bucket.TotalTrades++
		bucket.NetPL += t.ProfitLoss
		bucket.TotalPips += pips
		if t.Result == model.ResultWin {
			bucket.Wins++
		}

		entry := t.EntryDate.UTC()
		day := int(entry.Weekday())
		report.ByDayOfWeek[day].NetPL += t.ProfitLoss
		report.ByDayOfWeek[day].TotalTrades++
		report.ByHourOfDay[entry.Hour()].NetPL += t.ProfitLoss
		report.ByHourOfDay[entry.Hour()].TotalTrades++
	}

	if len(trades) > 0 {
		report.AveragePips = report.TotalPips / float64(len(trades))
	}
	if durationCounted > 0 {
		report.AverageTradeDurationMinutes = totalDurationMinutes / float64(durationCounted)
	}

	for _, asset := range assetOrder {
		bucket := assetBuckets[asset]
		if bucket.TotalTrades > 0 {
			bucket.WinRate = float64(bucket.Wins) / float64(bucket.TotalTrades) * 100
		}
		report.ByAsset = append(report.ByAsset, *bucket)
	}

	return report
}

// tradePips normalizes a trade's price delta into pips using the asset's
// spec, falling back to a pip size of 1 for unknown instruments
func tradePips(t model.ClosedTrade, specs map[string]model.AssetSpec) float64 {
	pipSize := 1.0
	if spec, ok := specs[t.Asset]; ok && spec.PipSize > 0 {
		pipSize = spec.PipSize
	}

	if t.Direction == model.DirectionSell {
		return (t.EntryPrice - t.ExitPrice) / pipSize
	}
	return (t.ExitPrice - t.EntryPrice) / pipSize
}
