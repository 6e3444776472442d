package catalog

import (
	"context"

	"go.uber.org/zap"

	"trade2cart/internal/domain"
)

type Seeder interface {
	InsertMissing(ctx context.Context, rate domain.MaterialRate) error
}

// Seed inserts rates that are not already present. Existing entries are left
// untouched; the admin surface owns them once created.
func Seed(ctx context.Context, repo Seeder, rates []domain.MaterialRate, logger *zap.Logger) error {
	for _, rate := range rates {
		if err := repo.InsertMissing(ctx, rate); err != nil {
			return err
		}
	}

	logger.Info("catalog seeded", zap.Int("entries", len(rates)))
	return nil
}
