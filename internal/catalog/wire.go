package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	catalogrepo "trade2cart/internal/catalog/repository"
	"trade2cart/internal/config"
)

func NewModule(db *sql.DB, cfg config.CatalogConfig, logger *zap.Logger) (*Controller, *Index, *catalogrepo.MySQLRatesRepository) {
	repo := catalogrepo.NewMySQLRatesRepository(db)
	index := NewIndex(repo, cfg.RefreshInterval, logger)
	return NewController(index, logger), index, repo
}
