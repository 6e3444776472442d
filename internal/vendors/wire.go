package vendors

import (
	"database/sql"

	"go.uber.org/zap"

	vendorrepo "trade2cart/internal/vendors/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) (*Controller, Repository) {
	repo := vendorrepo.NewMySQLVendorRepository(db)
	return NewController(repo, logger), repo
}
