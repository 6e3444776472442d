package billing

import (
	"trade2cart/internal/domain"
)

// Transition is the one value object describing the atomic multi-record
// write that closes an order: the expected and new order status, the bill to
// persist, and the customer fields to clear. It is built in one place and
// applied by TransitionService.Commit, so the write shape is defined and
// tested once.
type Transition struct {
	OrderID        string
	VendorID       string
	CustomerID     string
	Mobile         string
	ExpectedStatus string
	NewStatus      string
	Bill           FrozenBill
	ClearCustomer  bool
}

// NewCompletionTransition describes the assigned -> completed close-out for
// an order with the given frozen bill.
func NewCompletionTransition(order domain.Order, customer domain.Customer, frozen FrozenBill) Transition {
	return Transition{
		OrderID:        order.ID,
		VendorID:       order.VendorID,
		CustomerID:     customer.ID,
		Mobile:         order.Mobile,
		ExpectedStatus: domain.OrderStatusAssigned,
		NewStatus:      domain.OrderStatusCompleted,
		Bill:           frozen,
		ClearCustomer:  true,
	}
}
