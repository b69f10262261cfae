package repository

import (
	"context"
	"database/sql"

	"github.com/yourorg/trading-journal/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// AccountRepository reads broker account configuration, challenge
// objectives, and smart-limit settings
type AccountRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sqlx.DB, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

// GetAccountConfig retrieves an account's balance configuration.
// Returns (nil, nil) when the account does not exist.
func (r *AccountRepository) GetAccountConfig(
	ctx context.Context,
	accountID int,
) (*model.AccountConfig, error) {
	query := `
		SELECT id, user_id, initial_balance, current_balance, currency, drawdown_type
		FROM broker_accounts
		WHERE id = $1
	`

	var account model.AccountConfig
	err := r.db.GetContext(ctx, &account, query, accountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get account config",
			zap.Error(err),
			zap.Int("accountID", accountID))
		return nil, err
	}

	return &account, nil
}

// GetObjectiveConfig retrieves challenge objectives for an account. An
// account-level override wins; otherwise the account's prop-firm template
// supplies the objectives. Returns (nil, nil) when neither exists.
func (r *AccountRepository) GetObjectiveConfig(
	ctx context.Context,
	accountID int,
) (*model.ObjectiveConfig, error) {
	overrideQuery := `
		SELECT is_enabled, profit_target, min_trading_days, max_loss, max_daily_loss
		FROM account_objectives
		WHERE account_id = $1
	`

	var objective model.ObjectiveConfig
	err := r.db.GetContext(ctx, &objective, overrideQuery, accountID)
	if err == nil {
		return &objective, nil
	}
	if err != sql.ErrNoRows {
		r.logger.Error("Failed to get account objectives",
			zap.Error(err),
			zap.Int("accountID", accountID))
		return nil, err
	}

	templateQuery := `
		SELECT t.is_enabled, t.profit_target, t.min_trading_days, t.max_loss, t.max_daily_loss
		FROM prop_firm_templates t
		JOIN broker_accounts a ON a.template_id = t.id
		WHERE a.id = $1
	`

	err = r.db.GetContext(ctx, &objective, templateQuery, accountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get template objectives",
			zap.Error(err),
			zap.Int("accountID", accountID))
		return nil, err
	}

	return &objective, nil
}

// GetSmartLimitConfig retrieves smart-limit settings for an account.
// Returns (nil, nil) when the account has no smart-limit row; callers
// treat that as limits disabled.
func (r *AccountRepository) GetSmartLimitConfig(
	ctx context.Context,
	accountID int,
) (*model.SmartLimitConfig, error) {
	query := `
		SELECT is_enabled, max_risk_per_trade, max_trades_per_day, max_losses_per_day
		FROM smart_limit_configs
		WHERE account_id = $1
	`

	var config model.SmartLimitConfig
	err := r.db.GetContext(ctx, &config, query, accountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get smart limit config",
			zap.Error(err),
			zap.Int("accountID", accountID))
		return nil, err
	}

	return &config, nil
}
