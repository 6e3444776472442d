package repository

import (
	"context"
	"database/sql"
	"fmt"

	"trade2cart/internal/domain"
)

type MySQLRatesRepository struct {
	db *sql.DB
}

func NewMySQLRatesRepository(db *sql.DB) *MySQLRatesRepository {
	return &MySQLRatesRepository{db: db}
}

func (r *MySQLRatesRepository) FindAll(ctx context.Context) ([]domain.MaterialRate, error) {
	query := `
		SELECT id, name, rate, unit, location
		FROM MaterialRates
		ORDER BY location, name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying material rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.MaterialRate
	for rows.Next() {
		var m domain.MaterialRate
		if err := rows.Scan(&m.ID, &m.Name, &m.Rate, &m.Unit, &m.Location); err != nil {
			return nil, fmt.Errorf("scanning material rate row: %w", err)
		}
		rates = append(rates, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating material rate rows: %w", err)
	}

	return rates, nil
}

// InsertMissing adds a rate unless one already exists for the same name and
// location. Used only by catalog seeding; the admin surface owns edits.
func (r *MySQLRatesRepository) InsertMissing(ctx context.Context, rate domain.MaterialRate) error {
	query := `
		INSERT IGNORE INTO MaterialRates (name, rate, unit, location)
		VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, rate.Name, rate.Rate, rate.Unit, rate.Location); err != nil {
		return fmt.Errorf("inserting material rate: %w", err)
	}

	return nil
}
