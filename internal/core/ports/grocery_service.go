// internal/core/ports/grocery_service.go
package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/emartell/grocery-be/internal/core/domain"
)

// GroceryService defines the application service port consumed by the
// presentation layer. Absent results follow the repository convention.
type GroceryService interface {
	// Products
	SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, params ListParams) (*ProductListResult, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (*domain.Product, error)

	// Lists
	SaveList(ctx context.Context, list *domain.GroceryList) (*domain.GroceryList, error)
	GetList(ctx context.Context, id int64) (*domain.GroceryList, error)
	GetLists(ctx context.Context) ([]*domain.GroceryList, error)
	UpdateList(ctx context.Context, list *domain.GroceryList) (*domain.GroceryList, error)
	DeleteList(ctx context.Context, id int64) (*domain.GroceryList, error)

	// List items
	AddItem(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error)
	GetItemsOnList(ctx context.Context, listID int64) ([]*domain.GroceryListItem, error)
	UpdateItem(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error)
	RemoveItem(ctx context.Context, id int64) (bool, error)

	// Summary computes aggregate statistics over the store.
	Summary(ctx context.Context) (*Summary, error)
}

// Summary holds aggregate statistics for the summary endpoint
type Summary struct {
	ProductCount    int             `json:"product_count"`
	ListCount       int             `json:"list_count"`
	ItemCount       int             `json:"item_count"`
	TotalStock      int             `json:"total_stock"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	Timestamp       time.Time       `json:"timestamp"`
}
