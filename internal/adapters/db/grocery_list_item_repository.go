// internal/adapters/db/grocery_list_item_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/emartell/grocery-be/internal/core/domain"
	"github.com/emartell/grocery-be/internal/core/ports"
)

// groceryListItemRepository implements ports.GroceryListItemRepository. This
// is the one repository with cross-entity invariants: both foreign keys must
// resolve to live rows when an item is written. Add probes for the referenced
// rows inside its transaction so a dangling reference surfaces as a clean
// absent result instead of a raw constraint violation.
type groceryListItemRepository struct {
	db     *Database
	logger *slog.Logger
	cache  []*domain.GroceryListItem
}

// NewGroceryListItemRepository bootstraps the GroceryListItem table and warms
// the cache. The parent tables are defensively (re-)created first so this
// repository is robust to being constructed before the others.
func NewGroceryListItemRepository(ctx context.Context, database *Database, logger *slog.Logger) (ports.GroceryListItemRepository, error) {
	r := &groceryListItemRepository{
		db:     database,
		logger: logger.With(slog.String("repository", "grocery_list_item")),
	}

	for _, ddl := range []string{ddlProduct, ddlGroceryList, ddlGroceryListItem} {
		if err := database.CreateTableIfAbsent(ctx, ddl); err != nil {
			return nil, fmt.Errorf("failed to bootstrap grocery list item tables: %w", err)
		}
	}
	if _, err := r.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to warm grocery list item cache: %w", err)
	}

	return r, nil
}

func (r *groceryListItemRepository) GetAll(ctx context.Context) ([]*domain.GroceryListItem, error) {
	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	rows, err := r.db.Handle().QueryContext(ctx,
		`SELECT Id, GroceryListId, ProductId, Amount FROM GroceryListItem`)
	if err != nil {
		return nil, fmt.Errorf("failed to query grocery list items: %w", err)
	}
	defer rows.Close()

	r.cache = r.cache[:0]
	for rows.Next() {
		item := &domain.GroceryListItem{}
		if err := rows.Scan(&item.ID, &item.GroceryListID, &item.ProductID, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan grocery list item: %w", err)
		}
		r.cache = append(r.cache, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grocery list items: %w", err)
	}

	out := make([]*domain.GroceryListItem, len(r.cache))
	copy(out, r.cache)
	return out, nil
}

// GetAllOnGroceryListID reads the items belonging to one list straight from
// storage. Filtered reads leave the cache untouched.
func (r *groceryListItemRepository) GetAllOnGroceryListID(ctx context.Context, listID int64) ([]*domain.GroceryListItem, error) {
	if listID <= 0 {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	rows, err := r.db.Handle().QueryContext(ctx,
		`SELECT Id, GroceryListId, ProductId, Amount FROM GroceryListItem WHERE GroceryListId = ?`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grocery list items: %w", err)
	}
	defer rows.Close()

	var items []*domain.GroceryListItem
	for rows.Next() {
		item := &domain.GroceryListItem{}
		if err := rows.Scan(&item.ID, &item.GroceryListID, &item.ProductID, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan grocery list item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grocery list items: %w", err)
	}

	return items, nil
}

func (r *groceryListItemRepository) Get(ctx context.Context, id int64) (*domain.GroceryListItem, error) {
	if id <= 0 {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	item := &domain.GroceryListItem{}
	err := r.db.Handle().QueryRowContext(ctx,
		`SELECT Id, GroceryListId, ProductId, Amount FROM GroceryListItem WHERE Id = ?`, id).
		Scan(&item.ID, &item.GroceryListID, &item.ProductID, &item.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query grocery list item: %w", err)
	}
	return item, nil
}

// Add validates, probes both foreign keys and inserts inside one transaction.
// Either everything commits (cache and store agree) or everything rolls back
// (cache unchanged, store unchanged).
func (r *groceryListItemRepository) Add(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error) {
	if item == nil || item.GroceryListID <= 0 || item.ProductID <= 0 || item.Amount <= 0 {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	tx, err := r.db.Handle().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	ok, err := r.probeRow(ctx, tx, `SELECT Id FROM GroceryList WHERE Id = ?`, item.GroceryListID)
	if err != nil {
		r.db.rollback(ctx, tx)
		return nil, fmt.Errorf("failed to probe grocery list: %w", err)
	}
	if !ok {
		r.db.rollback(ctx, tx)
		r.logger.DebugContext(ctx, "add rejected, grocery list missing",
			slog.Int64("grocery_list_id", item.GroceryListID))
		return nil, nil
	}

	ok, err = r.probeRow(ctx, tx, `SELECT Id FROM Product WHERE Id = ?`, item.ProductID)
	if err != nil {
		r.db.rollback(ctx, tx)
		return nil, fmt.Errorf("failed to probe product: %w", err)
	}
	if !ok {
		r.db.rollback(ctx, tx)
		r.logger.DebugContext(ctx, "add rejected, product missing",
			slog.Int64("product_id", item.ProductID))
		return nil, nil
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO GroceryListItem (GroceryListId, ProductId, Amount) VALUES (?, ?, ?)`,
		item.GroceryListID, item.ProductID, item.Amount)
	if err != nil {
		r.db.rollback(ctx, tx)
		return nil, fmt.Errorf("failed to insert grocery list item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.db.rollback(ctx, tx)
		return nil, fmt.Errorf("failed to read grocery list item id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		r.db.rollback(ctx, tx)
		return nil, fmt.Errorf("failed to commit grocery list item: %w", err)
	}

	item.ID = id
	r.cache = append(r.cache, item)

	r.logger.DebugContext(ctx, "grocery list item added",
		slog.Int64("id", item.ID),
		slog.Int64("grocery_list_id", item.GroceryListID),
		slog.Int64("product_id", item.ProductID))

	return item, nil
}

// Update applies the same positive-value guards as Add but does not re-probe
// the foreign keys: the store's declared constraints reject dangling
// references, and that rejection is converted to an absent result.
func (r *groceryListItemRepository) Update(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error) {
	if item == nil || item.ID <= 0 || item.GroceryListID <= 0 || item.ProductID <= 0 || item.Amount <= 0 {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	res, err := r.db.Handle().ExecContext(ctx,
		`UPDATE GroceryListItem SET GroceryListId = ?, ProductId = ?, Amount = ? WHERE Id = ?`,
		item.GroceryListID, item.ProductID, item.Amount, item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.logger.DebugContext(ctx, "update rejected by foreign key constraint",
				slog.Int64("id", item.ID),
				slog.Int64("grocery_list_id", item.GroceryListID),
				slog.Int64("product_id", item.ProductID))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update grocery list item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	for _, cached := range r.cache {
		if cached.ID == item.ID {
			cached.GroceryListID = item.GroceryListID
			cached.ProductID = item.ProductID
			cached.Amount = item.Amount
			break
		}
	}

	return item, nil
}

// DeleteByID removes an item by identity; false means no row matched.
func (r *groceryListItemRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	if err := r.db.Open(); err != nil {
		return false, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	res, err := r.db.Handle().ExecContext(ctx,
		`DELETE FROM GroceryListItem WHERE Id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete grocery list item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	for i, cached := range r.cache {
		if cached.ID == id {
			r.cache = append(r.cache[:i], r.cache[i+1:]...)
			break
		}
	}

	r.logger.DebugContext(ctx, "grocery list item deleted", slog.Int64("id", id))
	return true, nil
}

// Delete by entity is not supported on this repository; callers must use
// DeleteByID. Calling it is a programming-contract violation.
func (r *groceryListItemRepository) Delete(ctx context.Context, item *domain.GroceryListItem) (*domain.GroceryListItem, error) {
	panic("grocery list item repository: delete by entity is not implemented, use DeleteByID")
}

func (r *groceryListItemRepository) probeRow(ctx context.Context, tx *sql.Tx, query string, id int64) (bool, error) {
	var found int64
	err := tx.QueryRowContext(ctx, query, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// isForeignKeyViolation reports whether err is the engine rejecting a
// dangling reference.
func isForeignKeyViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		code := serr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY || code == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
