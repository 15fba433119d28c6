// internal/core/domain/grocery_list_item.go
package domain

import "fmt"

// GroceryListItem links a product to a grocery list with an amount. Both
// foreign keys must resolve to live rows at write time; the repository
// rejects dangling references before they reach the store.
type GroceryListItem struct {
	ID            int64 `json:"id"`
	GroceryListID int64 `json:"grocery_list_id"`
	ProductID     int64 `json:"product_id"`
	Amount        int   `json:"amount"`
}

// Validate performs domain validation on the list item
func (i *GroceryListItem) Validate() error {
	if i.GroceryListID <= 0 {
		return fmt.Errorf("grocery_list_id must be positive")
	}
	if i.ProductID <= 0 {
		return fmt.Errorf("product_id must be positive")
	}
	if i.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}
