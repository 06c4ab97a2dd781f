package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Expects a MySQL
// instance on localhost:3306 with a database named 'tradepost_test';
// tests are skipped when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/tradepost_test?parseTime=true"
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

	tables := []string{"SaleItems", "Sales", "Product"}
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
	createProductTable := `
	CREATE TABLE IF NOT EXISTS Product (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		quantity INT NOT NULL DEFAULT 0,
		minQuantity INT NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createSalesTable := `
	CREATE TABLE IF NOT EXISTS Sales (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		userId INT NOT NULL,
		customerId INT,
		status VARCHAR(50) NOT NULL DEFAULT 'PENDING',
		subtotal DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		tax DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		total DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_user (userId)
	)`

	createSaleItemsTable := `
	CREATE TABLE IF NOT EXISTS SaleItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		saleId INT UNSIGNED NOT NULL,
		productId INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		unitPrice DECIMAL(10,2) NOT NULL,
		totalPrice DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (saleId) REFERENCES Sales(id) ON DELETE CASCADE,
		INDEX idx_sale (saleId),
		INDEX idx_product (productId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Product", createProductTable},
		{"Sales", createSalesTable},
		{"SaleItems", createSaleItemsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
