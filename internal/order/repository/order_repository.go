package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"trade2cart/internal/domain"
	"trade2cart/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, vendorId, customerId, mobile, status, totalAmount, completedAt, createdAt`

func scanOrder(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.VendorID, &order.CustomerID, &order.Mobile,
		&order.Status, &order.TotalAmount, &order.CompletedAt, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE id = ?`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

// FindByVendor lists a vendor's orders, optionally filtered by status,
// newest first.
func (r *MySQLOrderRepository) FindByVendor(ctx context.Context, vendorID, status string) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE vendorId = ?`, orderColumns)
	args := []interface{}{vendorID}

	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY createdAt DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders by vendor: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

// FindByIDForUpdate reads the order under a row lock so the status check and
// the completing update happen against the same version.
func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE id = ? FOR UPDATE`, orderColumns)

	order, err := scanOrder(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order for update: %w", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) Complete(ctx context.Context, tx *sql.Tx, id string, totalAmount float64, completedAt time.Time) error {
	query := `UPDATE Orders SET status = ?, totalAmount = ?, completedAt = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, domain.OrderStatusCompleted, totalAmount, completedAt, id)
	if err != nil {
		return fmt.Errorf("completing order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	return nil
}

// VendorStats aggregates a vendor's day so the summary endpoint is a single
// round trip.
type VendorStats struct {
	PendingCount   int
	CompletedToday int
	EarningsToday  float64
}

func (r *MySQLOrderRepository) StatsByVendor(ctx context.Context, vendorID string, dayStart time.Time) (*VendorStats, error) {
	query := `
		SELECT
			COALESCE(SUM(status = ?), 0),
			COALESCE(SUM(status = ? AND completedAt >= ?), 0),
			COALESCE(SUM(CASE WHEN status = ? AND completedAt >= ? THEN totalAmount ELSE 0 END), 0)
		FROM Orders
		WHERE vendorId = ?
	`

	var stats VendorStats
	err := r.db.QueryRowContext(ctx, query,
		domain.OrderStatusAssigned,
		domain.OrderStatusCompleted, dayStart,
		domain.OrderStatusCompleted, dayStart,
		vendorID,
	).Scan(&stats.PendingCount, &stats.CompletedToday, &stats.EarningsToday)
	if err != nil {
		return nil, fmt.Errorf("querying vendor stats: %w", err)
	}

	return &stats, nil
}
