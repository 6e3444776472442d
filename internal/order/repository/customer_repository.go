package repository

import (
	"context"
	"database/sql"
	"fmt"

	"trade2cart/internal/domain"
	"trade2cart/internal/errors"
)

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

func (r *MySQLCustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, phone, address, otp, status, currentAssignmentId, createdAt, updatedAt
		FROM Customers
		WHERE id = ?
	`

	var customer domain.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID, &customer.Name, &customer.Phone, &customer.Address,
		&customer.OTP, &customer.Status, &customer.CurrentAssignmentID,
		&customer.CreatedAt, &customer.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by id: %w", err)
	}

	return &customer, nil
}

// ClearAfterPickup resets the customer after their order is completed: the
// OTP is consumed, the assignment link is removed and the customer becomes
// available for a new pickup.
func (r *MySQLCustomerRepository) ClearAfterPickup(ctx context.Context, tx *sql.Tx, id string) error {
	query := `
		UPDATE Customers
		SET otp = NULL, currentAssignmentId = NULL, status = ?
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query, domain.CustomerStatusAvailable, id)
	if err != nil {
		return fmt.Errorf("clearing customer after pickup: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", id))
	}

	return nil
}
