package order

import (
	"database/sql"

	"go.uber.org/zap"

	orderrepo "trade2cart/internal/order/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) (*Controller, *orderrepo.MySQLOrderRepository, *orderrepo.MySQLCustomerRepository) {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	customerRepo := orderrepo.NewMySQLCustomerRepository(db)
	usecase := NewListUseCase(orderRepo, logger)
	return NewController(usecase, logger), orderRepo, customerRepo
}
