package billing

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderTxRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Order, error)
	Complete(ctx context.Context, tx *sql.Tx, id string, totalAmount float64, completedAt time.Time) error
}

type CustomerTxRepository interface {
	ClearAfterPickup(ctx context.Context, tx *sql.Tx, id string) error
}

type BillRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, bill domain.Bill) error
}

// TransitionService applies a Transition as one transaction: insert the
// bill, complete the order, clear the customer. The order status is
// re-checked under a row lock inside the transaction — the snapshot taken at
// session entry may be stale, and two sessions racing on one order are
// resolved here: first writer wins, the second gets a conflict.
type TransitionService struct {
	db            TransactionManager
	orderRepo     OrderTxRepository
	customerRepo  CustomerTxRepository
	billRepo      BillRepository
	logger        *zap.Logger
	commitTimeout time.Duration
}

func NewTransitionService(
	db TransactionManager,
	orderRepo OrderTxRepository,
	customerRepo CustomerTxRepository,
	billRepo BillRepository,
	logger *zap.Logger,
	commitTimeout time.Duration,
) *TransitionService {
	return &TransitionService{
		db:            db,
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		billRepo:      billRepo,
		logger:        logger,
		commitTimeout: commitTimeout,
	}
}

func (s *TransitionService) Commit(ctx context.Context, tr Transition) (string, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.commitTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return "", apperrors.NewUnavailableError("store unavailable", err)
	}

	billID, err := s.apply(txCtx, tx, tr)
	if err != nil {
		return "", s.abort(tx, err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transition", zap.String("orderId", tr.OrderID), zap.Error(err))
		// A failed commit applies nothing; the vendor can retry.
		return "", apperrors.NewUnavailableError("store unavailable", err)
	}

	s.logger.Info("order transitioned",
		zap.String("orderId", tr.OrderID),
		zap.String("billId", billID),
		zap.Float64("totalBill", tr.Bill.Total),
	)

	return billID, nil
}

func (s *TransitionService) apply(ctx context.Context, tx *sql.Tx, tr Transition) (string, error) {
	order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, tr.OrderID)
	if err != nil {
		return "", err
	}

	if order.Status != tr.ExpectedStatus {
		return "", apperrors.NewConflictError("order already completed")
	}

	now := time.Now()
	billID := uuid.New().String()
	bill := domain.Bill{
		ID:         billID,
		OrderID:    tr.OrderID,
		VendorID:   tr.VendorID,
		CustomerID: tr.CustomerID,
		Mobile:     tr.Mobile,
		Items:      tr.Bill.Lines,
		TotalBill:  tr.Bill.Total,
		CreatedAt:  now,
	}

	if err := s.billRepo.Insert(ctx, tx, bill); err != nil {
		return "", err
	}

	if err := s.orderRepo.Complete(ctx, tx, tr.OrderID, tr.Bill.Total, now); err != nil {
		return "", err
	}

	if tr.ClearCustomer {
		if err := s.customerRepo.ClearAfterPickup(ctx, tx, tr.CustomerID); err != nil {
			return "", err
		}
	}

	return billID, nil
}

// abort rolls the transaction back and maps the cause. A rollback failure
// means the store may be half-applied and is the one case that must never be
// retried automatically.
func (s *TransitionService) abort(tx *sql.Tx, cause error) error {
	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		s.logger.Error("rollback failed after aborted commit", zap.Error(rbErr), zap.NamedError("cause", cause))
		return apperrors.NewPartialCommitError("commit aborted and rollback failed", errors.Join(cause, rbErr))
	}

	if _, ok := apperrors.IsNotFoundError(cause); ok {
		return cause
	}
	if _, ok := apperrors.IsConflictError(cause); ok {
		return cause
	}
	return apperrors.NewUnavailableError("store unavailable", cause)
}
