package repository

import (
	"context"
	"time"

	"github.com/yourorg/trading-journal/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// TradeRepository reads closed trades from the journal database. The
// analytics service never writes trade rows; balance maintenance belongs
// to the trade-write service.
type TradeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *sqlx.DB, logger *zap.Logger) *TradeRepository {
	return &TradeRepository{
		db:     db,
		logger: logger,
	}
}

const closedTradeColumns = `
	id, account_id, playbook_id, playbook_setup_id, asset, direction,
	entry_price, exit_price, entry_date, exit_date,
	profit_loss, commission, swap, result
`

// ListClosedTrades retrieves all closed trades for an account ordered
// ascending by exit time
func (r *TradeRepository) ListClosedTrades(
	ctx context.Context,
	accountID int,
) ([]model.ClosedTrade, error) {
	query := `
		SELECT ` + closedTradeColumns + `
		FROM trades
		WHERE account_id = $1
		  AND result IS NOT NULL
		  AND exit_date IS NOT NULL
		ORDER BY exit_date ASC
	`

	var trades []model.ClosedTrade
	err := r.db.SelectContext(ctx, &trades, query, accountID)
	if err != nil {
		r.logger.Error("Failed to list closed trades",
			zap.Error(err),
			zap.Int("accountID", accountID))
		return nil, err
	}

	return trades, nil
}

// ListClosedTradesByPlaybook retrieves all closed trades for a playbook
// ordered ascending by exit time
func (r *TradeRepository) ListClosedTradesByPlaybook(
	ctx context.Context,
	playbookID int,
) ([]model.ClosedTrade, error) {
	query := `
		SELECT ` + closedTradeColumns + `
		FROM trades
		WHERE playbook_id = $1
		  AND result IS NOT NULL
		  AND exit_date IS NOT NULL
		ORDER BY exit_date ASC
	`

	var trades []model.ClosedTrade
	err := r.db.SelectContext(ctx, &trades, query, playbookID)
	if err != nil {
		r.logger.Error("Failed to list closed trades for playbook",
			zap.Error(err),
			zap.Int("playbookID", playbookID))
		return nil, err
	}

	return trades, nil
}

// ListClosedTradesBetween retrieves closed trades for an account whose
// exit date falls in [start, end), ordered ascending by exit time
func (r *TradeRepository) ListClosedTradesBetween(
	ctx context.Context,
	accountID int,
	start time.Time,
	end time.Time,
) ([]model.ClosedTrade, error) {
	query := `
		SELECT ` + closedTradeColumns + `
		FROM trades
		WHERE account_id = $1
		  AND result IS NOT NULL
		  AND exit_date IS NOT NULL
		  AND exit_date >= $2
		  AND exit_date < $3
		ORDER BY exit_date ASC
	`

	var trades []model.ClosedTrade
	err := r.db.SelectContext(ctx, &trades, query, accountID, start, end)
	if err != nil {
		r.logger.Error("Failed to list closed trades in range",
			zap.Error(err),
			zap.Int("accountID", accountID),
			zap.Time("start", start),
			zap.Time("end", end))
		return nil, err
	}

	return trades, nil
}

// CountTradesEntered counts trades entered in [start, end) and the subset
// recorded as losses. Open trades count toward the total; only closed
// losing trades count toward losses.
func (r *TradeRepository) CountTradesEntered(
	ctx context.Context,
	accountID int,
	start time.Time,
	end time.Time,
) (int, int, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE result = 'Loss') AS losses
		FROM trades
		WHERE account_id = $1
		  AND entry_date >= $2
		  AND entry_date < $3
	`

	var counts struct {
		Total  int `db:"total"`
		Losses int `db:"losses"`
	}
	err := r.db.GetContext(ctx, &counts, query, accountID, start, end)
	if err != nil {
		r.logger.Error("Failed to count trades entered",
			zap.Error(err),
			zap.Int("accountID", accountID))
		return 0, 0, err
	}

	return counts.Total, counts.Losses, nil
}
