package db_test

import (
	"database/sql/driver"

	"github.com/DATA-DOG/go-sqlmock"
)

// sqlmockExpecter is the subset of sqlmock.Sqlmock the bootstrap helpers need.
type sqlmockExpecter interface {
	ExpectExec(query string) *sqlmock.ExpectedExec
	ExpectQuery(query string) *sqlmock.ExpectedQuery
	ExpectBegin() *sqlmock.ExpectedBegin
	ExpectCommit() *sqlmock.ExpectedCommit
}

func noResult() driver.Result {
	return sqlmock.NewResult(0, 0)
}

func emptyProductRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Id", "Name", "Stock", "Date", "Price"})
}

func emptyItemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Id", "GroceryListId", "ProductId", "Amount"})
}

func singleIDRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Id"}).AddRow(id)
}
