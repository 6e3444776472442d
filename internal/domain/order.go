package domain

import "time"

type Order struct {
	ID          string
	VendorID    string
	CustomerID  string
	Mobile      string
	Status      string
	TotalAmount *float64
	CompletedAt *time.Time
	CreatedAt   time.Time
}

const (
	OrderStatusAssigned  = "assigned"
	OrderStatusCompleted = "completed"
)
