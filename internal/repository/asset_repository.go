package repository

import (
	"context"

	"github.com/yourorg/trading-journal/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// AssetRepository reads instrument specifications used for pip
// normalization
type AssetRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *sqlx.DB, logger *zap.Logger) *AssetRepository {
	return &AssetRepository{
		db:     db,
		logger: logger,
	}
}

// GetAssetSpecs retrieves all asset specs owned by a user, keyed by
// symbol. Symbols without a spec default to a pip size of 1 at the caller.
func (r *AssetRepository) GetAssetSpecs(
	ctx context.Context,
	userID int,
) (map[string]model.AssetSpec, error) {
	query := `
		SELECT symbol, pip_size, lot_size, value_per_point
		FROM asset_specs
		WHERE user_id = $1
	`

	var specs []model.AssetSpec
	err := r.db.SelectContext(ctx, &specs, query, userID)
	if err != nil {
		r.logger.Error("Failed to get asset specs",
			zap.Error(err),
			zap.Int("userID", userID))
		return nil, err
	}

	result := make(map[string]model.AssetSpec, len(specs))
	for _, spec := range specs {
		result[spec.Symbol] = spec
	}

	return result, nil
}
