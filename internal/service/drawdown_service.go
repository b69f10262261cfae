package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yourorg/trading-journal/internal/analytics"
	"github.com/yourorg/trading-journal/internal/model"

	"go.uber.org/zap"
)

// DrawdownService computes drawdown consumption and prop-firm compliance
// for broker accounts
type DrawdownService struct {
	trades   TradeReader
	accounts AccountReader
	events   EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewDrawdownService creates a new drawdown service. events may be nil
// when Kafka is disabled.
func NewDrawdownService(
	trades TradeReader,
	accounts AccountReader,
	events EventPublisher,
	logger *zap.Logger,
) *DrawdownService {
	return &DrawdownService{
		trades:   trades,
		accounts: accounts,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// CalculateDrawdown measures an account's drawdown consumption against its
// configured objectives and returns the compliance verdict. Max drawdown
// honors the account's STATIC/TRAILING mode; the daily window is the
// current UTC calendar day.
func (s *DrawdownService) CalculateDrawdown(
	ctx context.Context,
	accountID int,
) (*model.ComplianceReport, error) {
	account, err := s.accounts.GetAccountConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	objective, err := s.accounts.GetObjectiveConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}

	trades, err := s.trades.ListClosedTrades(ctx, accountID)
	if err != nil {
		return nil, err
	}

	report := &model.ComplianceReport{
		AccountID:   accountID,
		IsCompliant: true,
		Violations:  []string{},
	}

	for _, t := range trades {
		report.TotalProfitLoss += t.ProfitLoss
	}
	if account.InitialBalance > 0 {
		report.ProfitLossPercentage = report.TotalProfitLoss / account.InitialBalance * 100
	}

	report.CurrentMaxDrawdown = maxDrawdownForMode(trades, account.InitialBalance, account.DrawdownType)
	report.CurrentDailyDrawdown = s.currentDailyDrawdown(trades)
	report.DaysTradedCount = len(distinctTradingDays(trades))

	if objective != nil && objective.IsEnabled {
		s.applyObjectives(report, objective)
	}

	report.IsCompliant = len(report.Violations) == 0
	if !report.IsCompliant {
		s.publishViolations(ctx, report)
	}

	return report, nil
}

// applyObjectives fills target progress fields and appends violations for
// breached limits
func (s *DrawdownService) applyObjectives(report *model.ComplianceReport, objective *model.ObjectiveConfig) {
	if objective.ProfitTarget != nil && *objective.ProfitTarget > 0 {
		target := *objective.ProfitTarget
		report.ProfitTarget = objective.ProfitTarget
		report.ProfitTargetProgress = clampPercent(report.TotalProfitLoss / target * 100)
		remaining := target - report.TotalProfitLoss
		if remaining < 0 {
			remaining = 0
		}
		report.ProfitTargetRemaining = remaining
	}

	if objective.MinTradingDays != nil && *objective.MinTradingDays > 0 {
		report.MinTradingDays = objective.MinTradingDays
		report.DaysTradedProgress = clampPercent(
			float64(report.DaysTradedCount) / float64(*objective.MinTradingDays) * 100)
	}

	if objective.MaxLoss != nil && *objective.MaxLoss > 0 {
		limit := *objective.MaxLoss
		report.MaxDrawdownLimit = objective.MaxLoss
		report.MaxDrawdownUsedPercent = report.CurrentMaxDrawdown / limit * 100
		if report.CurrentMaxDrawdown > limit {
			report.Violations = append(report.Violations,
				fmt.Sprintf("Maximum drawdown of %.2f exceeds the %.2f limit", report.CurrentMaxDrawdown, limit))
		}
	}

	if objective.MaxDailyLoss != nil && *objective.MaxDailyLoss > 0 {
		limit := *objective.MaxDailyLoss
		report.DailyDrawdownLimit = objective.MaxDailyLoss
		report.DailyDrawdownUsedPercent = report.CurrentDailyDrawdown / limit * 100
		if report.CurrentDailyDrawdown > limit {
			report.Violations = append(report.Violations,
				fmt.Sprintf("Daily drawdown of %.2f exceeds the %.2f limit", report.CurrentDailyDrawdown, limit))
		}
	}
}

// GetObjectivesProgress returns the per-objective challenge dashboard
// view. This deliberately uses its own definitions: max loss is always
// measured from the high-water mark regardless of the account's drawdown
// type, and the daily loss objective looks at the last traded day rather
// than the current day. Not interchangeable with CalculateDrawdown.
func (s *DrawdownService) GetObjectivesProgress(
	ctx context.Context,
	accountID int,
) ([]model.ObjectiveProgress, error) {
	account, err := s.accounts.GetAccountConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	objective, err := s.accounts.GetObjectiveConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}

	progress := []model.ObjectiveProgress{}
	if objective == nil || !objective.IsEnabled {
		return progress, nil
	}

	trades, err := s.trades.ListClosedTrades(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var totalPL float64
	for _, t := range trades {
		totalPL += t.ProfitLoss
	}

	if objective.ProfitTarget != nil && *objective.ProfitTarget > 0 {
		status := model.ObjectiveStatusInProgress
		if totalPL >= *objective.ProfitTarget {
			status = model.ObjectiveStatusSuccess
		}
		progress = append(progress, model.ObjectiveProgress{
			Name:         model.ObjectiveProfitTarget,
			CurrentValue: totalPL,
			TargetValue:  *objective.ProfitTarget,
			Status:       status,
		})
	}

	if objective.MinTradingDays != nil && *objective.MinTradingDays > 0 {
		daysTraded := len(distinctTradingDays(trades))
		status := model.ObjectiveStatusInProgress
		if daysTraded >= *objective.MinTradingDays {
			status = model.ObjectiveStatusSuccess
		}
		progress = append(progress, model.ObjectiveProgress{
			Name:         model.ObjectiveMinTradingDays,
			CurrentValue: float64(daysTraded),
			TargetValue:  float64(*objective.MinTradingDays),
			Status:       status,
		})
	}

	if objective.MaxLoss != nil && *objective.MaxLoss > 0 {
		curve := analytics.BuildEquityCurve(trades, account.InitialBalance)
		drawdown, _ := analytics.MaxDrawdown(curve)
		status := model.ObjectiveStatusSuccess
		if drawdown > *objective.MaxLoss {
			status = model.ObjectiveStatusFailed
		}
		progress = append(progress, model.ObjectiveProgress{
			Name:         model.ObjectiveMaxLoss,
			CurrentValue: drawdown,
			TargetValue:  *objective.MaxLoss,
			Status:       status,
		})
	}

	if objective.MaxDailyLoss != nil && *objective.MaxDailyLoss > 0 {
		loss := lastTradedDayLoss(trades)
		status := model.ObjectiveStatusSuccess
		if loss > *objective.MaxDailyLoss {
			status = model.ObjectiveStatusFailed
		}
		progress = append(progress, model.ObjectiveProgress{
			Name:         model.ObjectiveMaxDailyLoss,
			CurrentValue: loss,
			TargetValue:  *objective.MaxDailyLoss,
			Status:       status,
		})
	}

	return progress, nil
}

// publishViolations sends a compliance event for the notification
// pipeline, best effort
func (s *DrawdownService) publishViolations(ctx context.Context, report *model.ComplianceReport) {
	if s.events == nil {
		return
	}

	event := model.ComplianceEvent{
		AccountID:  report.AccountID,
		Violations: report.Violations,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.PublishComplianceEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish compliance event",
			zap.Error(err),
			zap.Int("accountID", report.AccountID))
	}
}

// currentDailyDrawdown sums profit/loss over trades exited during the
// current UTC day and reports the magnitude when the sum is negative
func (s *DrawdownService) currentDailyDrawdown(trades []model.ClosedTrade) float64 {
	dayStart, dayEnd := analytics.DayWindowUTC(s.now())

	var sum float64
	for _, t := range trades {
		exit := t.ExitDate.UTC()
		if !exit.Before(dayStart) && exit.Before(dayEnd) {
			sum += t.ProfitLoss
		}
	}
	if sum < 0 {
		return -sum
	}
	return 0
}

// maxDrawdownForMode walks trades in exit-time order accumulating the
// balance and measures the deepest negative excursion. TRAILING measures
// against a peak that advances by every winning trade; STATIC always
// against the initial balance. The stats engine uses the plain
// high-water-mark definition instead; the two are not interchangeable.
func maxDrawdownForMode(trades []model.ClosedTrade, initialBalance float64, mode model.DrawdownType) float64 {
	balance := initialBalance
	peak := initialBalance
	maxDD := 0.0

	for _, t := range trades {
		balance += t.ProfitLoss
		if mode == model.DrawdownTrailing && t.ProfitLoss > 0 {
			peak += t.ProfitLoss
		}

		reference := initialBalance
		if mode == model.DrawdownTrailing {
			reference = peak
		}

		if drawdown := balance - reference; drawdown < maxDD {
			maxDD = drawdown
		}
	}

	return -maxDD
}

// distinctTradingDays returns the set of UTC calendar dates with at least
// one closed trade. Profitability does not matter here.
func distinctTradingDays(trades []model.ClosedTrade) map[string]struct{} {
	days := make(map[string]struct{})
	for _, t := range trades {
		days[t.ExitDate.UTC().Format("2006-01-02")] = struct{}{}
	}
	return days
}

// lastTradedDayLoss returns the magnitude of the most recent traded day's
// net profit/loss when negative, else 0
func lastTradedDayLoss(trades []model.ClosedTrade) float64 {
	if len(trades) == 0 {
		return 0
	}

	sums := make(map[string]float64)
	days := make([]string, 0)
	for _, t := range trades {
		day := t.ExitDate.UTC().Format("2006-01-02")
		if _, seen := sums[day]; !seen {
			days = append(days, day)
		}
		sums[day] += t.ProfitLoss
	}
	sort.Strings(days)

	last := sums[days[len(days)-1]]
	if last < 0 {
		return -last
	}
	return 0
}
