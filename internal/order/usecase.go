package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
	orderrepo "trade2cart/internal/order/repository"
)

type Repository interface {
	FindByVendor(ctx context.Context, vendorID, status string) ([]domain.Order, error)
	StatsByVendor(ctx context.Context, vendorID string, dayStart time.Time) (*orderrepo.VendorStats, error)
}

type ListUseCase struct {
	orders Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewListUseCase(orders Repository, logger *zap.Logger) *ListUseCase {
	return &ListUseCase{
		orders: orders,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the vendor's orders. An empty status means all orders.
func (uc *ListUseCase) List(ctx context.Context, vendorID, status string) ([]domain.Order, error) {
	switch status {
	case "", domain.OrderStatusAssigned, domain.OrderStatusCompleted:
	default:
		return nil, apperrors.NewValidationError("invalid status filter", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be assigned or completed",
		})
	}

	return uc.orders.FindByVendor(ctx, vendorID, status)
}

type Summary struct {
	PendingCount   int
	CompletedToday int
	EarningsToday  float64
}

// Summary reports the vendor's dashboard figures. "Today" starts at local
// midnight of the server clock.
func (uc *ListUseCase) Summary(ctx context.Context, vendorID string) (*Summary, error) {
	now := uc.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats, err := uc.orders.StatsByVendor(ctx, vendorID, dayStart)
	if err != nil {
		return nil, err
	}

	return &Summary{
		PendingCount:   stats.PendingCount,
		CompletedToday: stats.CompletedToday,
		EarningsToday:  stats.EarningsToday,
	}, nil
}
