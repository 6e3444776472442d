package repository

import (
	"context"
	"testing"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
	"trade2cart/internal/testutil"
)

func TestCustomerRepositoryClearAfterPickup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCustomerRepository(db)
	_, err := db.Exec(
		`INSERT INTO Customers (id, name, phone, otp, status, currentAssignmentId) VALUES (?, ?, ?, ?, ?, ?)`,
		"cust-1", "Meena", "+919800000001", "4321", domain.CustomerStatusAwaiting, "order-1",
	)
	if err != nil {
		t.Fatalf("seeding customer: %v", err)
	}

	before, err := repo.FindByID(context.Background(), "cust-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if before.OTP == nil || *before.OTP != "4321" {
		t.Fatalf("expected seeded otp, got %+v", before.OTP)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.ClearAfterPickup(context.Background(), tx, "cust-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	after, err := repo.FindByID(context.Background(), "cust-1")
	if err != nil {
		t.Fatalf("find after clear: %v", err)
	}
	if after.OTP != nil || after.CurrentAssignmentID != nil {
		t.Errorf("expected otp and assignment cleared, got %+v", after)
	}
	if after.Status != domain.CustomerStatusAvailable {
		t.Errorf("expected available, got %s", after.Status)
	}
}

func TestCustomerRepositoryFindMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCustomerRepository(db)
	_, err := repo.FindByID(context.Background(), "cust-missing")
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
