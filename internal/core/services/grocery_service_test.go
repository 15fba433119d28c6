package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emartell/grocery-be/internal/adapters/memcache"
	"github.com/emartell/grocery-be/internal/core/domain"
	"github.com/emartell/grocery-be/internal/core/ports"
	"github.com/emartell/grocery-be/internal/core/services"
	"github.com/emartell/grocery-be/test/helpers"
)

// In-memory fakes mirroring the repository contract: absent = (nil, nil).

type fakeProductRepo struct {
	byID   map[int64]*domain.Product
	nextID int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[int64]*domain.Product), nextID: 1}
}

func (f *fakeProductRepo) GetAll(ctx context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(f.byID))
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, nil
	}
	return f.byID[id], nil
}

func (f *fakeProductRepo) Add(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	p.ID = f.nextID
	f.nextID++
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p.ID <= 0 || f.byID[p.ID] == nil {
		return nil, nil
	}
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p.ID <= 0 || f.byID[p.ID] == nil {
		return nil, nil
	}
	delete(f.byID, p.ID)
	return p, nil
}

func (f *fakeProductRepo) List(ctx context.Context, params ports.ListParams) (*ports.ProductListResult, error) {
	items, _ := f.GetAll(ctx)
	return &ports.ProductListResult{Items: items, Page: 1, PageSize: len(items), TotalCount: int64(len(items)), TotalPages: 1}, nil
}

type fakeListRepo struct {
	byID   map[int64]*domain.GroceryList
	nextID int64
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{byID: make(map[int64]*domain.GroceryList), nextID: 1}
}

func (f *fakeListRepo) GetAll(ctx context.Context) ([]*domain.GroceryList, error) {
	out := make([]*domain.GroceryList, 0, len(f.byID))
	for id := int64(1); id < f.nextID; id++ {
		if l, ok := f.byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListRepo) Get(ctx context.Context, id int64) (*domain.GroceryList, error) {
	if id <= 0 {
		return nil, nil
	}
	return f.byID[id], nil
}

func (f *fakeListRepo) Add(ctx context.Context, l *domain.GroceryList) (*domain.GroceryList, error) {
	l.ID = f.nextID
	f.nextID++
	f.byID[l.ID] = l
	return l, nil
}

func (f *fakeListRepo) Update(ctx context.Context, l *domain.GroceryList) (*domain.GroceryList, error) {
	if l.ID <= 0 || f.byID[l.ID] == nil {
		return nil, nil
	}
	f.byID[l.ID] = l
	return l, nil
}

func (f *fakeListRepo) Delete(ctx context.Context, l *domain.GroceryList) (*domain.GroceryList, error) {
	if l.ID <= 0 || f.byID[l.ID] == nil {
		return nil, nil
	}
	delete(f.byID, l.ID)
	return l, nil
}

type fakeItemRepo struct {
	lists    *fakeListRepo
	products *fakeProductRepo
	byID     map[int64]*domain.GroceryListItem
	nextID   int64
}

func newFakeItemRepo(lists *fakeListRepo, products *fakeProductRepo) *fakeItemRepo {
	return &fakeItemRepo{lists: lists, products: products, byID: make(map[int64]*domain.GroceryListItem), nextID: 1}
}

func (f *fakeItemRepo) GetAll(ctx context.Context) ([]*domain.GroceryListItem, error) {
	out := make([]*domain.GroceryListItem, 0, len(f.byID))
	for id := int64(1); id < f.nextID; id++ {
		if i, ok := f.byID[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) GetAllOnGroceryListID(ctx context.Context, listID int64) ([]*domain.GroceryListItem, error) {
	all, _ := f.GetAll(ctx)
	var out []*domain.GroceryListItem
	for _, i := range all {
		if i.GroceryListID == listID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Get(ctx context.Context, id int64) (*domain.GroceryListItem, error) {
	if id <= 0 {
		return nil, nil
	}
	return f.byID[id], nil
}

func (f *fakeItemRepo) Add(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error) {
	if item == nil || item.GroceryListID <= 0 || item.ProductID <= 0 || item.Amount <= 0 {
		return nil, nil
	}
	if f.lists.byID[item.GroceryListID] == nil || f.products.byID[item.ProductID] == nil {
		return nil, nil
	}
	item.ID = f.nextID
	f.nextID++
	f.byID[item.ID] = item
	return item, nil
}

func (f *fakeItemRepo) Update(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error) {
	if item == nil || item.ID <= 0 || item.Amount <= 0 || f.byID[item.ID] == nil {
		return nil, nil
	}
	f.byID[item.ID] = item
	return item, nil
}

func (f *fakeItemRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if id <= 0 || f.byID[id] == nil {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeItemRepo) Delete(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error) {
	panic("delete by entity is not implemented")
}

func setupService(t *testing.T) (*services.GroceryService, *fakeProductRepo, *fakeListRepo, *fakeItemRepo) {
	t.Helper()
	products := newFakeProductRepo()
	lists := newFakeListRepo()
	items := newFakeItemRepo(lists, products)
	cache := memcache.NewCache(time.Minute, helpers.TestLogger())
	svc := services.NewGroceryService(products, lists, items, cache, helpers.TestLogger())
	return svc, products, lists, items
}

func TestGroceryService_SaveProduct(t *testing.T) {
	svc, _, _, _ := setupService(t)
	ctx := context.Background()

	added, err := svc.SaveProduct(ctx, helpers.CreateTestProduct())
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Positive(t, added.ID)
}

func TestGroceryService_SaveProduct_Invalid(t *testing.T) {
	svc, _, _, _ := setupService(t)

	_, err := svc.SaveProduct(context.Background(), &domain.Product{Stock: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestGroceryService_SaveList_DefaultsCreatedOn(t *testing.T) {
	svc, _, _, _ := setupService(t)

	list, err := svc.SaveList(context.Background(), &domain.GroceryList{Name: "Camping trip"})
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.NotNil(t, list.CreatedOn)
}

func TestGroceryService_AddItem_RejectedReference(t *testing.T) {
	svc, _, _, _ := setupService(t)
	ctx := context.Background()

	added, err := svc.AddItem(ctx, &domain.GroceryListItem{GroceryListID: 1, ProductID: 1, Amount: 3})
	require.NoError(t, err)
	assert.Nil(t, added, "dangling references must reject, not fail")
}

func TestGroceryService_AddItem(t *testing.T) {
	svc, _, _, _ := setupService(t)
	ctx := context.Background()

	product, err := svc.SaveProduct(ctx, helpers.CreateTestProduct())
	require.NoError(t, err)
	list, err := svc.SaveList(ctx, &domain.GroceryList{Name: "Weekly"})
	require.NoError(t, err)

	added, err := svc.AddItem(ctx, &domain.GroceryListItem{
		GroceryListID: list.ID,
		ProductID:     product.ID,
		Amount:        2,
	})
	require.NoError(t, err)
	require.NotNil(t, added)

	onList, err := svc.GetItemsOnList(ctx, list.ID)
	require.NoError(t, err)
	assert.Len(t, onList, 1)
}

func TestGroceryService_DeleteProduct_Unknown(t *testing.T) {
	svc, _, _, _ := setupService(t)

	deleted, err := svc.DeleteProduct(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestGroceryService_Summary(t *testing.T) {
	svc, _, _, _ := setupService(t)
	ctx := context.Background()

	product := helpers.CreateTestProduct()
	product.Stock = 2
	product.Price = decimal.NewFromFloat(1.50)
	_, err := svc.SaveProduct(ctx, product)
	require.NoError(t, err)

	list, err := svc.SaveList(ctx, &domain.GroceryList{Name: "Weekly"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, &domain.GroceryListItem{GroceryListID: list.ID, ProductID: product.ID, Amount: 1})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ProductCount)
	assert.Equal(t, 1, summary.ListCount)
	assert.Equal(t, 1, summary.ItemCount)
	assert.Equal(t, 2, summary.TotalStock)
	assert.True(t, decimal.NewFromFloat(3.0).Equal(summary.TotalStockValue))
}

func TestGroceryService_Summary_InvalidatedOnWrite(t *testing.T) {
	svc, _, _, _ := setupService(t)
	ctx := context.Background()

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.ProductCount)

	_, err = svc.SaveProduct(ctx, helpers.CreateTestProduct())
	require.NoError(t, err)

	summary, err = svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ProductCount, "writes must invalidate the cached summary")
}

func TestGroceryService_RemoveItem(t *testing.T) {
	svc, _, _, _ := setupService(t)
	ctx := context.Background()

	product, err := svc.SaveProduct(ctx, helpers.CreateTestProduct())
	require.NoError(t, err)
	list, err := svc.SaveList(ctx, &domain.GroceryList{Name: "Weekly"})
	require.NoError(t, err)
	added, err := svc.AddItem(ctx, &domain.GroceryListItem{GroceryListID: list.ID, ProductID: product.ID, Amount: 1})
	require.NoError(t, err)

	ok, err := svc.RemoveItem(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.RemoveItem(ctx, added.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
