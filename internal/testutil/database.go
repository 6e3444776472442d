package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. It expects a MySQL
// instance on localhost:3306 with a database named 'trade2cart_test' and
// skips the test when none is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/trade2cart_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"BillItems", "Bills", "Orders", "Customers", "MaterialRates", "Vendors"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the integration tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createVendorsTable := `
	CREATE TABLE IF NOT EXISTS Vendors (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(30) NOT NULL UNIQUE,
		location VARCHAR(100) NOT NULL,
		aadhaar VARCHAR(20) NOT NULL,
		pan VARCHAR(20) NOT NULL,
		license VARCHAR(30),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_vendor_phone (phone)
	)`

	createCustomersTable := `
	CREATE TABLE IF NOT EXISTS Customers (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(30) NOT NULL,
		address VARCHAR(255),
		otp VARCHAR(10),
		status VARCHAR(30) NOT NULL DEFAULT 'available',
		currentAssignmentId VARCHAR(36),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_customer_phone (phone)
	)`

	createMaterialRatesTable := `
	CREATE TABLE IF NOT EXISTS MaterialRates (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		rate DECIMAL(10,2) NOT NULL,
		unit VARCHAR(20) NOT NULL DEFAULT 'kg',
		location VARCHAR(100) NOT NULL,
		UNIQUE KEY uq_rate_name_location (name, location),
		INDEX idx_rate_location (location)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		vendorId VARCHAR(36) NOT NULL,
		customerId VARCHAR(36) NOT NULL,
		mobile VARCHAR(30) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'assigned',
		totalAmount DECIMAL(16,5),
		completedAt DATETIME,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_order_vendor_status (vendorId, status),
		INDEX idx_order_customer (customerId)
	)`

	createBillsTable := `
	CREATE TABLE IF NOT EXISTS Bills (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		orderId VARCHAR(36) NOT NULL,
		vendorId VARCHAR(36) NOT NULL,
		customerId VARCHAR(36) NOT NULL,
		mobile VARCHAR(30) NOT NULL,
		totalBill DECIMAL(16,5) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_bill_order (orderId),
		INDEX idx_bill_vendor (vendorId)
	)`

	createBillItemsTable := `
	CREATE TABLE IF NOT EXISTS BillItems (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		billId VARCHAR(36) NOT NULL,
		position INT NOT NULL,
		name VARCHAR(100) NOT NULL,
		unit VARCHAR(20) NOT NULL DEFAULT 'kg',
		rate DECIMAL(10,2) NOT NULL,
		quantity DECIMAL(10,3) NOT NULL,
		total DECIMAL(16,5) NOT NULL,
		FOREIGN KEY (billId) REFERENCES Bills(id) ON DELETE CASCADE,
		INDEX idx_bill_item_bill (billId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Vendors", createVendorsTable},
		{"Customers", createCustomersTable},
		{"MaterialRates", createMaterialRatesTable},
		{"Orders", createOrdersTable},
		{"Bills", createBillsTable},
		{"BillItems", createBillItemsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
