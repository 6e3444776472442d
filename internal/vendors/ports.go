package vendors

import (
	"context"

	"trade2cart/internal/domain"
)

type Repository interface {
	FindByPhone(ctx context.Context, phone string) (*domain.Vendor, error)
	Insert(ctx context.Context, v domain.Vendor) error
}
