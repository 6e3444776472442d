package domain

import "time"

type Vendor struct {
	ID        string
	Name      string
	Phone     string
	Location  string
	Aadhaar   string
	PAN       string
	License   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	VendorStatusPending  = "pending"
	VendorStatusApproved = "approved"
	VendorStatusRejected = "rejected"
)

// Approved reports whether the vendor may see orders and trade prices.
func (v Vendor) Approved() bool {
	return v.Status == VendorStatusApproved
}
