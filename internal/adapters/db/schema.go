// internal/adapters/db/schema.go
package db

// Schema definitions. All DDL is idempotent; repositories (re-)create their
// tables at construction time in whatever order they are built, so the
// list-item repository also carries the parent table definitions.

const ddlProduct = `
	CREATE TABLE IF NOT EXISTS Product (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		Name TEXT NOT NULL,
		Stock INTEGER NOT NULL,
		Date TEXT NOT NULL,
		Price REAL NOT NULL
	)`

const ddlGroceryList = `
	CREATE TABLE IF NOT EXISTS GroceryList (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		Name TEXT NOT NULL,
		CreatedOn TEXT,
		Color TEXT,
		OwnerUserId INTEGER
	)`

const ddlGroceryListItem = `
	CREATE TABLE IF NOT EXISTS GroceryListItem (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		GroceryListId INTEGER NOT NULL,
		ProductId INTEGER NOT NULL,
		Amount INTEGER NOT NULL,
		FOREIGN KEY (GroceryListId) REFERENCES GroceryList (Id) ON DELETE CASCADE,
		FOREIGN KEY (ProductId) REFERENCES Product (Id) ON DELETE CASCADE
	)`

const seedProductSQL = `INSERT OR IGNORE INTO Product (Id, Name, Stock, Date, Price) VALUES (?, ?, ?, ?, ?)`

// productSeed returns the fixed reference rows applied at bootstrap.
// INSERT OR IGNORE keeps reapplication safe and never alters existing rows.
func productSeed() []Statement {
	return []Statement{
		{SQL: seedProductSQL, Args: []interface{}{1, "Milk", 10, "2026-09-10", 1.49}},
		{SQL: seedProductSQL, Args: []interface{}{2, "Bread", 5, "2026-09-04", 2.19}},
		{SQL: seedProductSQL, Args: []interface{}{3, "Eggs", 24, "2026-09-18", 3.29}},
		{SQL: seedProductSQL, Args: []interface{}{4, "Butter", 8, "2026-10-02", 2.99}},
	}
}
