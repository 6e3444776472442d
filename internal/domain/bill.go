package domain

import "time"

// Bill is the persisted record of a completed pickup. Created exactly once
// at commit time, immutable thereafter. TotalBill equals the sum of the line
// totals at the time of creation; it is never recomputed.
type Bill struct {
	ID         string
	OrderID    string
	VendorID   string
	CustomerID string
	Mobile     string
	Items      []BillLineItem
	TotalBill  float64
	CreatedAt  time.Time
}

// BillLineItem is one weighed material entry. Rate is a snapshot of the
// catalog rate at the time the line was added. Position preserves insertion
// order for display.
type BillLineItem struct {
	Position int
	Name     string
	Unit     string
	Rate     float64
	Quantity float64
}

// Total is the line amount, computed from the unrounded rate and quantity.
func (li BillLineItem) Total() float64 {
	return li.Rate * li.Quantity
}
