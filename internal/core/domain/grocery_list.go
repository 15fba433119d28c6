// internal/core/domain/grocery_list.go
package domain

import (
	"fmt"
	"time"
)

// GroceryList represents a named shopping list. CreatedOn, Color and
// OwnerUserID are optional and stored as NULL when unset.
type GroceryList struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	CreatedOn   *time.Time `json:"created_on,omitempty"`
	Color       string     `json:"color,omitempty"`
	OwnerUserID *int64     `json:"owner_user_id,omitempty"`
}

// Validate performs domain validation on the grocery list
func (l *GroceryList) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
