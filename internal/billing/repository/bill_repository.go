package repository

import (
	"context"
	"database/sql"
	"fmt"

	"trade2cart/internal/domain"
)

type MySQLBillRepository struct {
	db *sql.DB
}

func NewMySQLBillRepository(db *sql.DB) *MySQLBillRepository {
	return &MySQLBillRepository{db: db}
}

// Insert writes the bill and its line items inside the caller's transaction.
// Line totals are stored as computed at insert time and never recomputed.
func (r *MySQLBillRepository) Insert(ctx context.Context, tx *sql.Tx, bill domain.Bill) error {
	billQuery := `
		INSERT INTO Bills (id, orderId, vendorId, customerId, mobile, totalBill, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, billQuery,
		bill.ID, bill.OrderID, bill.VendorID, bill.CustomerID,
		bill.Mobile, bill.TotalBill, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting bill: %w", err)
	}

	itemQuery := `
		INSERT INTO BillItems (billId, position, name, unit, rate, quantity, total)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	for _, li := range bill.Items {
		_, err := tx.ExecContext(ctx, itemQuery,
			bill.ID, li.Position, li.Name, li.Unit, li.Rate, li.Quantity, li.Total(),
		)
		if err != nil {
			return fmt.Errorf("inserting bill item %d: %w", li.Position, err)
		}
	}

	return nil
}

// FindByVendor returns a vendor's bills, newest first.
func (r *MySQLBillRepository) FindByVendor(ctx context.Context, vendorID string) ([]domain.Bill, error) {
	query := `
		SELECT id, orderId, vendorId, customerId, mobile, totalBill, createdAt
		FROM Bills
		WHERE vendorId = ?
		ORDER BY createdAt DESC
	`

	rows, err := r.db.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("querying bills: %w", err)
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		var b domain.Bill
		err := rows.Scan(&b.ID, &b.OrderID, &b.VendorID, &b.CustomerID, &b.Mobile, &b.TotalBill, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning bill row: %w", err)
		}
		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill rows: %w", err)
	}

	return bills, nil
}
