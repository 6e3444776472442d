package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"trade2cart/internal/domain"
	"trade2cart/internal/testutil"
)

func insertBill(t *testing.T, db *sql.DB, repo *MySQLBillRepository, bill domain.Bill) {
	t.Helper()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.Insert(context.Background(), tx, bill); err != nil {
		t.Fatalf("insert bill %s: %v", bill.ID, err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestBillRepositoryFindByVendor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLBillRepository(db)
	now := time.Now().Truncate(time.Second)

	insertBill(t, db, repo, domain.Bill{
		ID: "bill-1", OrderID: "order-1", VendorID: "vendor-1", CustomerID: "cust-1",
		Mobile: "+919800000001", TotalBill: 100,
		Items:     []domain.BillLineItem{{Position: 0, Name: "Newspaper", Unit: "kg", Rate: 14, Quantity: 2}},
		CreatedAt: now.Add(-time.Hour),
	})
	insertBill(t, db, repo, domain.Bill{
		ID: "bill-2", OrderID: "order-2", VendorID: "vendor-1", CustomerID: "cust-2",
		Mobile: "+919800000002", TotalBill: 200,
		CreatedAt: now,
	})
	insertBill(t, db, repo, domain.Bill{
		ID: "bill-3", OrderID: "order-3", VendorID: "vendor-2", CustomerID: "cust-3",
		Mobile: "+919800000003", TotalBill: 300,
		CreatedAt: now,
	})

	bills, err := repo.FindByVendor(context.Background(), "vendor-1")
	if err != nil {
		t.Fatalf("find by vendor: %v", err)
	}

	if len(bills) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(bills))
	}
	if bills[0].ID != "bill-2" || bills[1].ID != "bill-1" {
		t.Errorf("expected newest first, got %s then %s", bills[0].ID, bills[1].ID)
	}
}
