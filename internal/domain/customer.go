package domain

import "time"

type Customer struct {
	ID                  string
	Name                string
	Phone               string
	Address             string
	OTP                 *string
	Status              string
	CurrentAssignmentID *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

const (
	CustomerStatusAvailable = "available"
	CustomerStatusAwaiting  = "awaiting_pickup"
)
