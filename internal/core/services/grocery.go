// internal/core/services/grocery.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/emartell/grocery-be/internal/core/domain"
	"github.com/emartell/grocery-be/internal/core/ports"
)

const (
	summaryCacheKey = "summary:main"
	summaryCacheTTL = 30 * time.Second
)

// GroceryService orchestrates the repositories for the presentation layer.
// It validates domain objects before delegating; rejection semantics beyond
// that (absent results) belong to the repositories themselves.
type GroceryService struct {
	products ports.ProductRepository
	lists    ports.GroceryListRepository
	items    ports.GroceryListItemRepository
	cache    ports.CacheRepository
	logger   *slog.Logger
}

// Statically assert that *GroceryService implements the GroceryService interface.
var _ ports.GroceryService = (*GroceryService)(nil)

// NewGroceryService creates a new grocery service
func NewGroceryService(
	products ports.ProductRepository,
	lists ports.GroceryListRepository,
	items ports.GroceryListItemRepository,
	cache ports.CacheRepository,
	logger *slog.Logger,
) *GroceryService {
	return &GroceryService{
		products: products,
		lists:    lists,
		items:    items,
		cache:    cache,
		logger:   logger.With(slog.String("service", "grocery")),
	}
}

// SaveProduct validates and persists a new product.
func (s *GroceryService) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	added, err := s.products.Add(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	if added != nil {
		s.invalidateSummary(ctx)
		s.logger.InfoContext(ctx, "product saved",
			slog.Int64("id", added.ID),
			slog.String("name", added.Name))
	}
	return added, nil
}

// GetProduct retrieves a product by id.
func (s *GroceryService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

// ListProducts returns a filtered, paginated product listing.
func (s *GroceryService) ListProducts(ctx context.Context, params ports.ListParams) (*ports.ProductListResult, error) {
	result, err := s.products.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return result, nil
}

// UpdateProduct validates and writes all mutable product fields.
func (s *GroceryService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if updated != nil {
		s.invalidateSummary(ctx)
	}
	return updated, nil
}

// DeleteProduct removes a product; dependent list items are revoked by the
// store's cascade rule.
func (s *GroceryService) DeleteProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, nil
	}

	deleted, err := s.products.Delete(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	if deleted != nil {
		s.invalidateSummary(ctx)
		s.logger.InfoContext(ctx, "product deleted", slog.Int64("id", id))
	}
	return deleted, nil
}

// SaveList validates and persists a new grocery list.
func (s *GroceryService) SaveList(ctx context.Context, list *domain.GroceryList) (*domain.GroceryList, error) {
	if err := list.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if list.CreatedOn == nil {
		now := time.Now().UTC()
		list.CreatedOn = &now
	}

	added, err := s.lists.Add(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("failed to save list: %w", err)
	}
	if added != nil {
		s.invalidateSummary(ctx)
		s.logger.InfoContext(ctx, "grocery list saved",
			slog.Int64("id", added.ID),
			slog.String("name", added.Name))
	}
	return added, nil
}

// GetList retrieves a grocery list by id.
func (s *GroceryService) GetList(ctx context.Context, id int64) (*domain.GroceryList, error) {
	return s.lists.Get(ctx, id)
}

// GetLists returns all grocery lists.
func (s *GroceryService) GetLists(ctx context.Context) ([]*domain.GroceryList, error) {
	return s.lists.GetAll(ctx)
}

// UpdateList validates and writes all mutable list fields.
func (s *GroceryService) UpdateList(ctx context.Context, list *domain.GroceryList) (*domain.GroceryList, error) {
	if err := list.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return s.lists.Update(ctx, list)
}

// DeleteList removes a list and, through the cascade rule, its items.
func (s *GroceryService) DeleteList(ctx context.Context, id int64) (*domain.GroceryList, error) {
	list, err := s.lists.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load list: %w", err)
	}
	if list == nil {
		return nil, nil
	}

	deleted, err := s.lists.Delete(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("failed to delete list: %w", err)
	}
	if deleted != nil {
		s.invalidateSummary(ctx)
		s.logger.InfoContext(ctx, "grocery list deleted", slog.Int64("id", id))
	}
	return deleted, nil
}

// AddItem puts a product on a list. An absent result means the item was
// rejected: invalid values or a reference that does not resolve.
func (s *GroceryService) AddItem(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error) {
	added, err := s.items.Add(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	if added != nil {
		s.invalidateSummary(ctx)
		s.logger.InfoContext(ctx, "list item added",
			slog.Int64("id", added.ID),
			slog.Int64("grocery_list_id", added.GroceryListID),
			slog.Int64("product_id", added.ProductID))
	}
	return added, nil
}

// GetItemsOnList returns the items belonging to one list.
func (s *GroceryService) GetItemsOnList(ctx context.Context, listID int64) ([]*domain.GroceryListItem, error) {
	return s.items.GetAllOnGroceryListID(ctx, listID)
}

// UpdateItem writes all mutable item fields.
func (s *GroceryService) UpdateItem(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error) {
	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	if updated != nil {
		s.invalidateSummary(ctx)
	}
	return updated, nil
}

// RemoveItem deletes an item by id.
func (s *GroceryService) RemoveItem(ctx context.Context, id int64) (bool, error) {
	ok, err := s.items.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove item: %w", err)
	}
	if ok {
		s.invalidateSummary(ctx)
	}
	return ok, nil
}

// Summary computes aggregate statistics, served from the cache when fresh.
func (s *GroceryService) Summary(ctx context.Context) (*ports.Summary, error) {
	var summary ports.Summary
	err := s.cache.GetOrSet(ctx, summaryCacheKey, &summary, func() (interface{}, error) {
		return s.loadSummary(ctx)
	}, summaryCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}
	return &summary, nil
}

func (s *GroceryService) loadSummary(ctx context.Context) (*ports.Summary, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	lists, err := s.lists.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.items.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ports.Summary{
		ProductCount:    len(products),
		ListCount:       len(lists),
		ItemCount:       len(items),
		TotalStockValue: decimal.Zero,
		Timestamp:       time.Now().UTC(),
	}
	for _, p := range products {
		summary.TotalStock += p.Stock
		summary.TotalStockValue = summary.TotalStockValue.
			Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return summary, nil
}

func (s *GroceryService) invalidateSummary(ctx context.Context) {
	if err := s.cache.Delete(ctx, summaryCacheKey); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate summary cache",
			slog.String("error", err.Error()))
	}
}
