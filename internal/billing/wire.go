package billing

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	billingrepo "trade2cart/internal/billing/repository"
	"trade2cart/internal/infrastructure/events"
)

const (
	sessionTTL    = 2 * time.Hour
	commitTimeout = 10 * time.Second
)

// OrderStore is the order access the workflow needs: plain reads outside a
// transaction and locked read/complete inside one.
type OrderStore interface {
	OrderReader
	OrderTxRepository
}

type CustomerStore interface {
	CustomerReader
	CustomerTxRepository
}

func NewModule(
	db *sql.DB,
	catalog RateCatalog,
	orders OrderStore,
	customers CustomerStore,
	publisher events.Publisher,
	logger *zap.Logger,
) *Controller {
	billRepo := billingrepo.NewMySQLBillRepository(db)
	sessions := NewSessionStore(sessionTTL)
	transitions := NewTransitionService(db, orders, customers, billRepo, logger, commitTimeout)
	usecase := NewProcessUseCase(orders, customers, catalog, sessions, transitions, billRepo, publisher, logger)
	return NewController(usecase, logger)
}
