// internal/core/ports/repositories.go
package ports

import (
	"context"

	"github.com/emartell/grocery-be/internal/core/domain"
)

// Repositories return (nil, nil) when the requested or submitted entity is
// absent: unknown id, non-positive id, or a write rejected by validation or
// referential checks. A non-nil error is reserved for storage failures.

// ProductRepository defines the persistence port for products.
// This interface is implemented by the database adapter.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Add(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, product *domain.Product) (*domain.Product, error)
	List(ctx context.Context, params ListParams) (*ProductListResult, error)
}

// GroceryListRepository defines the persistence port for grocery lists.
type GroceryListRepository interface {
	GetAll(ctx context.Context) ([]*domain.GroceryList, error)
	Get(ctx context.Context, id int64) (*domain.GroceryList, error)
	Add(ctx context.Context, list *domain.GroceryList) (*domain.GroceryList, error)
	Update(ctx context.Context, list *domain.GroceryList) (*domain.GroceryList, error)
	Delete(ctx context.Context, list *domain.GroceryList) (*domain.GroceryList, error)
}

// GroceryListItemRepository defines the persistence port for list items.
type GroceryListItemRepository interface {
	GetAll(ctx context.Context) ([]*domain.GroceryListItem, error)
	GetAllOnGroceryListID(ctx context.Context, listID int64) ([]*domain.GroceryListItem, error)
	Get(ctx context.Context, id int64) (*domain.GroceryListItem, error)
	Add(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error)
	Update(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error)
	// DeleteByID removes an item by identity; false means no row matched.
	DeleteByID(ctx context.Context, id int64) (bool, error)
	// Delete by entity is not supported; it panics. Use DeleteByID.
	Delete(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error)
}

// ListParams holds parameters for the filtered product listing
type ListParams struct {
	Search    string
	MinPrice  float64
	MaxPrice  float64
	InStock   *bool
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ProductListResult holds the result of a filtered product listing
type ProductListResult struct {
	Items      []*domain.Product `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}
