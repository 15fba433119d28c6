// internal/core/domain/product.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaxProductPrice is the upper bound a product price may take.
var MaxProductPrice = decimal.NewFromInt(10000)

// DateLayout is the storage format for calendar dates.
const DateLayout = "2006-01-02"

// Product represents a purchasable catalog entry. A product with ID 0 has
// not been persisted yet; the store assigns the identity on insert.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Date  time.Time       `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// Validate performs domain validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if p.Price.GreaterThan(MaxProductPrice) {
		return fmt.Errorf("price exceeds maximum of %s", MaxProductPrice)
	}
	return nil
}

// DateString renders the shelf-life date in storage format.
func (p *Product) DateString() string {
	return p.Date.Format(DateLayout)
}
