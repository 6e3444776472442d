package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
	"trade2cart/internal/testutil"
)

func seedOrder(t *testing.T, db *sql.DB, id, vendorID, status string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO Orders (id, vendorId, customerId, mobile, status) VALUES (?, ?, ?, ?, ?)`,
		id, vendorID, "cust-1", "+919800000001", status,
	)
	if err != nil {
		t.Fatalf("seeding order %s: %v", id, err)
	}
}

func TestOrderRepositoryFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	seedOrder(t, db, "order-1", "vendor-1", domain.OrderStatusAssigned)

	order, err := repo.FindByID(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if order.VendorID != "vendor-1" || order.Status != domain.OrderStatusAssigned {
		t.Errorf("unexpected order: %+v", order)
	}

	_, err = repo.FindByID(context.Background(), "order-missing")
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestOrderRepositoryFindByVendor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	seedOrder(t, db, "order-1", "vendor-1", domain.OrderStatusAssigned)
	seedOrder(t, db, "order-2", "vendor-1", domain.OrderStatusCompleted)
	seedOrder(t, db, "order-3", "vendor-2", domain.OrderStatusAssigned)

	all, err := repo.FindByVendor(context.Background(), "vendor-1", "")
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 orders, got %d", len(all))
	}

	assigned, err := repo.FindByVendor(context.Background(), "vendor-1", domain.OrderStatusAssigned)
	if err != nil {
		t.Fatalf("find assigned: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != "order-1" {
		t.Errorf("unexpected assigned orders: %+v", assigned)
	}
}

func TestOrderRepositoryComplete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	seedOrder(t, db, "order-1", "vendor-1", domain.OrderStatusAssigned)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	locked, err := repo.FindByIDForUpdate(context.Background(), tx, "order-1")
	if err != nil {
		t.Fatalf("find for update: %v", err)
	}
	if locked.Status != domain.OrderStatusAssigned {
		t.Fatalf("expected assigned, got %s", locked.Status)
	}

	if err := repo.Complete(context.Background(), tx, "order-1", 453, time.Now()); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	order, err := repo.FindByID(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("find after complete: %v", err)
	}
	if order.Status != domain.OrderStatusCompleted {
		t.Errorf("expected completed, got %s", order.Status)
	}
	if order.TotalAmount == nil || *order.TotalAmount != 453 {
		t.Errorf("expected totalAmount 453, got %+v", order.TotalAmount)
	}
	if order.CompletedAt == nil {
		t.Error("expected completedAt set")
	}
}

func TestOrderRepositoryStatsByVendor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	seedOrder(t, db, "order-1", "vendor-1", domain.OrderStatusAssigned)
	seedOrder(t, db, "order-2", "vendor-1", domain.OrderStatusAssigned)

	now := time.Now()
	_, err := db.Exec(
		`INSERT INTO Orders (id, vendorId, customerId, mobile, status, totalAmount, completedAt) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"order-3", "vendor-1", "cust-1", "+919800000001", domain.OrderStatusCompleted, 150.5, now,
	)
	if err != nil {
		t.Fatalf("seeding completed order: %v", err)
	}
	_, err = db.Exec(
		`INSERT INTO Orders (id, vendorId, customerId, mobile, status, totalAmount, completedAt) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"order-4", "vendor-1", "cust-1", "+919800000001", domain.OrderStatusCompleted, 99, now.Add(-48*time.Hour),
	)
	if err != nil {
		t.Fatalf("seeding old completed order: %v", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := repo.StatsByVendor(context.Background(), "vendor-1", dayStart)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.PendingCount != 2 {
		t.Errorf("expected 2 pending, got %d", stats.PendingCount)
	}
	if stats.CompletedToday != 1 {
		t.Errorf("expected 1 completed today, got %d", stats.CompletedToday)
	}
	if stats.EarningsToday != 150.5 {
		t.Errorf("expected earnings 150.5, got %v", stats.EarningsToday)
	}
}
