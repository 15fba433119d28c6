// internal/adapters/db/product_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/emartell/grocery-be/internal/core/domain"
	"github.com/emartell/grocery-be/internal/core/ports"
)

// productRepository implements ports.ProductRepository. It owns an in-memory
// read cache mirroring the Product table: rebuilt on GetAll, patched on
// single-row mutations. Instances are not safe for concurrent use.
type productRepository struct {
	db     *Database
	logger *slog.Logger
	cache  []*domain.Product
}

// NewProductRepository bootstraps the Product table, applies the seed rows and
// warms the cache before returning. A bootstrap failure is fatal to the caller.
func NewProductRepository(ctx context.Context, database *Database, logger *slog.Logger) (ports.ProductRepository, error) {
	r := &productRepository{
		db:     database,
		logger: logger.With(slog.String("repository", "product")),
	}

	if err := database.CreateTableIfAbsent(ctx, ddlProduct); err != nil {
		return nil, fmt.Errorf("failed to bootstrap product table: %w", err)
	}
	if err := database.RunBatch(ctx, productSeed()); err != nil {
		return nil, fmt.Errorf("failed to seed product table: %w", err)
	}
	if _, err := r.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to warm product cache: %w", err)
	}

	return r, nil
}

// GetAll reads every row in storage order, rebuilds the cache and returns it.
func (r *productRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	rows, err := r.db.Handle().QueryContext(ctx,
		`SELECT Id, Name, Stock, Date, Price FROM Product`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	r.cache = r.cache[:0]
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		r.cache = append(r.cache, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	out := make([]*domain.Product, len(r.cache))
	copy(out, r.cache)
	return out, nil
}

// Get looks up a single product by primary key. A non-positive id
// short-circuits to absent without touching storage.
func (r *productRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	row := r.db.Handle().QueryRowContext(ctx,
		`SELECT Id, Name, Stock, Date, Price FROM Product WHERE Id = ?`, id)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Add inserts the product, assigns the engine-generated identity on the passed
// entity and appends it to the cache. The caller's object becomes the
// persisted one.
func (r *productRepository) Add(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	res, err := r.db.Handle().ExecContext(ctx,
		`INSERT INTO Product (Name, Stock, Date, Price) VALUES (?, ?, ?, ?)`,
		product.Name, product.Stock, product.DateString(), priceValue(product.Price))
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read product id: %w", err)
	}

	product.ID = id
	r.cache = append(r.cache, product)

	r.logger.DebugContext(ctx, "product added",
		slog.Int64("id", product.ID),
		slog.String("name", product.Name))

	return product, nil
}

// Update writes all mutable fields. Absent is returned when the id is
// non-positive or no row matched; the matching cached entry is mutated in
// place so every holder of the reference observes the change.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil || product.ID <= 0 {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	res, err := r.db.Handle().ExecContext(ctx,
		`UPDATE Product SET Name = ?, Stock = ?, Date = ?, Price = ? WHERE Id = ?`,
		product.Name, product.Stock, product.DateString(), priceValue(product.Price), product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	for _, cached := range r.cache {
		if cached.ID == product.ID {
			cached.Name = product.Name
			cached.Stock = product.Stock
			cached.Date = product.Date
			cached.Price = product.Price
			break
		}
	}

	return product, nil
}

// Delete removes the product by id; cascade delete revokes dependent list
// items at the store level.
func (r *productRepository) Delete(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil || product.ID <= 0 {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	res, err := r.db.Handle().ExecContext(ctx,
		`DELETE FROM Product WHERE Id = ?`, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	for i, cached := range r.cache {
		if cached.ID == product.ID {
			r.cache = append(r.cache[:i], r.cache[i+1:]...)
			break
		}
	}

	r.logger.DebugContext(ctx, "product deleted", slog.Int64("id", product.ID))
	return product, nil
}

// List reads a filtered, paginated page straight from storage. It does not
// touch the cache: the cache mirrors full-table reads only.
func (r *productRepository) List(ctx context.Context, params ports.ListParams) (*ports.ProductListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	qb := squirrel.Select("Id", "Name", "Stock", "Date", "Price").
		From("Product").
		PlaceholderFormat(squirrel.Question)
	cb := squirrel.Select("COUNT(*)").
		From("Product").
		PlaceholderFormat(squirrel.Question)

	if params.Search != "" {
		like := "%" + params.Search + "%"
		qb = qb.Where("Name LIKE ?", like)
		cb = cb.Where("Name LIKE ?", like)
	}
	if params.MinPrice > 0 {
		qb = qb.Where(squirrel.GtOrEq{"Price": params.MinPrice})
		cb = cb.Where(squirrel.GtOrEq{"Price": params.MinPrice})
	}
	if params.MaxPrice > 0 {
		qb = qb.Where(squirrel.LtOrEq{"Price": params.MaxPrice})
		cb = cb.Where(squirrel.LtOrEq{"Price": params.MaxPrice})
	}
	if params.InStock != nil {
		if *params.InStock {
			qb = qb.Where(squirrel.Gt{"Stock": 0})
			cb = cb.Where(squirrel.Gt{"Stock": 0})
		} else {
			qb = qb.Where(squirrel.Eq{"Stock": 0})
			cb = cb.Where(squirrel.Eq{"Stock": 0})
		}
	}

	qb = qb.OrderBy(listOrderClause(params.SortBy, params.SortOrder)).
		Limit(uint64(params.PageSize)).
		Offset(uint64((params.Page - 1) * params.PageSize))

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	countSQL, countArgs, err := cb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int64
	if err := r.db.Handle().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	querySQL, queryArgs, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}
	rows, err := r.db.Handle().QueryContext(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Product, 0, params.PageSize)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	return &ports.ProductListResult{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

// listOrderClause whitelists sortable columns; unknown input falls back to
// storage order.
func listOrderClause(sortBy, sortOrder string) string {
	column := "Id"
	switch sortBy {
	case "name":
		column = "Name"
	case "price":
		column = "Price"
	case "stock":
		column = "Stock"
	case "date":
		column = "Date"
	}
	if sortOrder == "desc" {
		return column + " DESC"
	}
	return column + " ASC"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct reconstructs a product from a row, parsing the stored date text
// and converting the floating price representation into the decimal type.
func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product  domain.Product
		dateText string
		price    float64
	)

	if err := row.Scan(&product.ID, &product.Name, &product.Stock, &dateText, &price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	date, err := time.Parse(domain.DateLayout, dateText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product date %q: %w", dateText, err)
	}

	product.Date = date
	product.Price = decimal.NewFromFloat(price)
	return &product, nil
}

// priceValue converts the decimal price into the stored REAL representation.
func priceValue(price decimal.Decimal) float64 {
	value, _ := price.Float64()
	return value
}
