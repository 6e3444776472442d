package vendors

import (
	"context"

	"trade2cart/internal/domain"
)

type vendorKey struct{}

func WithVendor(ctx context.Context, v *domain.Vendor) context.Context {
	return context.WithValue(ctx, vendorKey{}, v)
}

func FromContext(ctx context.Context) (*domain.Vendor, bool) {
	v, ok := ctx.Value(vendorKey{}).(*domain.Vendor)
	return v, ok
}
