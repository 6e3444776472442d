package billing

import (
	"context"

	"go.uber.org/zap"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
	"trade2cart/internal/infrastructure/events"
)

type OrderReader interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}

type CustomerReader interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
}

type TransitionCommitter interface {
	Commit(ctx context.Context, tr Transition) (string, error)
}

type BillReader interface {
	FindByVendor(ctx context.Context, vendorID string) ([]domain.Bill, error)
}

// ProcessUseCase drives the order-processing workflow: OTP verification
// opens a session, the session's builder accumulates lines against the
// vendor's local rates, and commit closes the order through the transition
// service. Order and customer are snapshotted once at entry — the commit-time
// precondition check covers any staleness.
type ProcessUseCase struct {
	orders      OrderReader
	customers   CustomerReader
	catalog     RateCatalog
	sessions    *SessionStore
	transitions TransitionCommitter
	bills       BillReader
	publisher   events.Publisher
	logger      *zap.Logger
}

func NewProcessUseCase(
	orders OrderReader,
	customers CustomerReader,
	catalog RateCatalog,
	sessions *SessionStore,
	transitions TransitionCommitter,
	bills BillReader,
	publisher events.Publisher,
	logger *zap.Logger,
) *ProcessUseCase {
	return &ProcessUseCase{
		orders:      orders,
		customers:   customers,
		catalog:     catalog,
		sessions:    sessions,
		transitions: transitions,
		bills:       bills,
		publisher:   publisher,
		logger:      logger,
	}
}

// VerifyOTP checks the vendor-entered code against the customer record and,
// on success, opens a processing session in Editing state.
func (uc *ProcessUseCase) VerifyOTP(ctx context.Context, v *domain.Vendor, orderID, code string) (*Session, error) {
	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.VendorID != v.ID {
		return nil, apperrors.NewForbiddenError("order is assigned to another vendor")
	}
	if order.Status != domain.OrderStatusAssigned {
		return nil, apperrors.NewConflictError("order already completed")
	}

	customer, err := uc.customers.FindByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}

	if customer.OTP == nil || *customer.OTP != code {
		return nil, apperrors.NewUnauthorizedError("invalid OTP")
	}

	builder := NewBuilder(uc.catalog, v.Location)
	sess := uc.sessions.Create(v.ID, *order, *customer, builder)

	uc.logger.Info("processing session opened",
		zap.String("sessionId", sess.ID),
		zap.String("orderId", order.ID),
		zap.String("vendorId", v.ID),
	)

	return sess, nil
}

func (uc *ProcessUseCase) AddLine(ctx context.Context, vendorID, sessionID, materialName string, quantity float64) (SessionView, error) {
	sess, err := uc.sessions.Get(sessionID, vendorID)
	if err != nil {
		return SessionView{}, err
	}

	if err := sess.AddLine(materialName, quantity); err != nil {
		return SessionView{}, err
	}
	return sess.View(), nil
}

func (uc *ProcessUseCase) RemoveLine(ctx context.Context, vendorID, sessionID string, index int) (SessionView, error) {
	sess, err := uc.sessions.Get(sessionID, vendorID)
	if err != nil {
		return SessionView{}, err
	}

	if err := sess.RemoveLine(index); err != nil {
		return SessionView{}, err
	}
	return sess.View(), nil
}

func (uc *ProcessUseCase) SetQuantity(ctx context.Context, vendorID, sessionID string, index int, quantity float64) (SessionView, error) {
	sess, err := uc.sessions.Get(sessionID, vendorID)
	if err != nil {
		return SessionView{}, err
	}

	if err := sess.SetQuantity(index, quantity); err != nil {
		return SessionView{}, err
	}
	return sess.View(), nil
}

func (uc *ProcessUseCase) View(ctx context.Context, vendorID, sessionID string) (SessionView, error) {
	sess, err := uc.sessions.Get(sessionID, vendorID)
	if err != nil {
		return SessionView{}, err
	}
	return sess.View(), nil
}

func (uc *ProcessUseCase) Finalize(ctx context.Context, vendorID, sessionID string) (SessionView, error) {
	sess, err := uc.sessions.Get(sessionID, vendorID)
	if err != nil {
		return SessionView{}, err
	}

	if _, err := sess.Finalize(); err != nil {
		return SessionView{}, err
	}
	return sess.View(), nil
}

func (uc *ProcessUseCase) Edit(ctx context.Context, vendorID, sessionID string) (SessionView, error) {
	sess, err := uc.sessions.Get(sessionID, vendorID)
	if err != nil {
		return SessionView{}, err
	}

	if err := sess.Edit(); err != nil {
		return SessionView{}, err
	}
	return sess.View(), nil
}

func (uc *ProcessUseCase) Cancel(ctx context.Context, vendorID, sessionID string) error {
	sess, err := uc.sessions.Get(sessionID, vendorID)
	if err != nil {
		return err
	}

	if err := sess.Cancel(); err != nil {
		return err
	}

	uc.sessions.Remove(sessionID)
	uc.logger.Info("processing session cancelled", zap.String("sessionId", sessionID))
	return nil
}

// ListBills returns the vendor's committed bills, newest first.
func (uc *ProcessUseCase) ListBills(ctx context.Context, vendorID string) ([]domain.Bill, error) {
	return uc.bills.FindByVendor(ctx, vendorID)
}

type CommitResult struct {
	BillID    string
	OrderID   string
	TotalBill float64
}

// Commit applies the completion transition for a reviewed session. On
// failure the session lands back in Reviewing (retryable), in Aborted when
// another session won the race, or in Failed on a partial commit.
func (uc *ProcessUseCase) Commit(ctx context.Context, vendorID, sessionID string) (*CommitResult, error) {
	sess, err := uc.sessions.Get(sessionID, vendorID)
	if err != nil {
		return nil, err
	}

	frozen, err := sess.BeginCommit()
	if err != nil {
		return nil, err
	}

	tr := NewCompletionTransition(sess.Order, sess.Customer, *frozen)
	billID, commitErr := uc.transitions.Commit(ctx, tr)
	sess.FinishCommit(commitErr)

	// Terminal sessions are gone from the store immediately; only a
	// retryable failure keeps the session alive in Reviewing.
	switch sess.State() {
	case StateDone, StateAborted, StateFailed:
		uc.sessions.Remove(sessionID)
	}

	if commitErr != nil {
		return nil, commitErr
	}

	event := events.OrderCompletedEvent{
		OrderID:    sess.Order.ID,
		VendorID:   vendorID,
		CustomerID: sess.Customer.ID,
		BillID:     billID,
		TotalBill:  frozen.Total,
		Timestamp:  frozen.FrozenAt,
	}
	if err := uc.publisher.PublishOrderCompleted(ctx, event); err != nil {
		// The commit stands regardless.
		uc.logger.Warn("order completed event not published", zap.Error(err))
	}

	return &CommitResult{
		BillID:    billID,
		OrderID:   sess.Order.ID,
		TotalBill: frozen.Total,
	}, nil
}
