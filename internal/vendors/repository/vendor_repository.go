package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
)

type MySQLVendorRepository struct {
	db *sql.DB
}

func NewMySQLVendorRepository(db *sql.DB) *MySQLVendorRepository {
	return &MySQLVendorRepository{db: db}
}

func (r *MySQLVendorRepository) FindByPhone(ctx context.Context, phone string) (*domain.Vendor, error) {
	query := `
		SELECT id, name, phone, location, aadhaar, pan, license, status, createdAt, updatedAt
		FROM Vendors
		WHERE phone = ?
	`

	var v domain.Vendor
	err := r.db.QueryRowContext(ctx, query, phone).Scan(
		&v.ID, &v.Name, &v.Phone, &v.Location, &v.Aadhaar, &v.PAN,
		&v.License, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("vendor with phone %s not found", phone))
	}
	if err != nil {
		return nil, fmt.Errorf("querying vendor by phone: %w", err)
	}

	return &v, nil
}

func (r *MySQLVendorRepository) Insert(ctx context.Context, v domain.Vendor) error {
	query := `
		INSERT INTO Vendors (id, name, phone, location, aadhaar, pan, license, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.Name, v.Phone, v.Location, v.Aadhaar, v.PAN, v.License, v.Status,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return apperrors.NewConflictError(fmt.Sprintf("vendor with phone %s already registered", v.Phone))
		}
		return fmt.Errorf("inserting vendor: %w", err)
	}

	return nil
}
