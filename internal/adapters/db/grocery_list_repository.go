// internal/adapters/db/grocery_list_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emartell/grocery-be/internal/core/domain"
	"github.com/emartell/grocery-be/internal/core/ports"
)

// groceryListRepository implements ports.GroceryListRepository with the same
// cache discipline as the product repository.
type groceryListRepository struct {
	db     *Database
	logger *slog.Logger
	cache  []*domain.GroceryList
}

// NewGroceryListRepository bootstraps the GroceryList table and warms the
// cache before returning.
func NewGroceryListRepository(ctx context.Context, database *Database, logger *slog.Logger) (ports.GroceryListRepository, error) {
	r := &groceryListRepository{
		db:     database,
		logger: logger.With(slog.String("repository", "grocery_list")),
	}

	if err := database.CreateTableIfAbsent(ctx, ddlGroceryList); err != nil {
		return nil, fmt.Errorf("failed to bootstrap grocery list table: %w", err)
	}
	if _, err := r.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to warm grocery list cache: %w", err)
	}

	return r, nil
}

func (r *groceryListRepository) GetAll(ctx context.Context) ([]*domain.GroceryList, error) {
	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	rows, err := r.db.Handle().QueryContext(ctx,
		`SELECT Id, Name, CreatedOn, Color, OwnerUserId FROM GroceryList`)
	if err != nil {
		return nil, fmt.Errorf("failed to query grocery lists: %w", err)
	}
	defer rows.Close()

	r.cache = r.cache[:0]
	for rows.Next() {
		list, err := scanGroceryList(rows)
		if err != nil {
			return nil, err
		}
		r.cache = append(r.cache, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grocery lists: %w", err)
	}

	out := make([]*domain.GroceryList, len(r.cache))
	copy(out, r.cache)
	return out, nil
}

func (r *groceryListRepository) Get(ctx context.Context, id int64) (*domain.GroceryList, error) {
	if id <= 0 {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	row := r.db.Handle().QueryRowContext(ctx,
		`SELECT Id, Name, CreatedOn, Color, OwnerUserId FROM GroceryList WHERE Id = ?`, id)

	list, err := scanGroceryList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *groceryListRepository) Add(ctx context.Context, list *domain.GroceryList) (*domain.GroceryList, error) {
	if list == nil {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	res, err := r.db.Handle().ExecContext(ctx,
		`INSERT INTO GroceryList (Name, CreatedOn, Color, OwnerUserId) VALUES (?, ?, ?, ?)`,
		list.Name, createdOnValue(list.CreatedOn), nullableString(list.Color), list.OwnerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert grocery list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read grocery list id: %w", err)
	}

	list.ID = id
	r.cache = append(r.cache, list)

	r.logger.DebugContext(ctx, "grocery list added",
		slog.Int64("id", list.ID),
		slog.String("name", list.Name))

	return list, nil
}

func (r *groceryListRepository) Update(ctx context.Context, list *domain.GroceryList) (*domain.GroceryList, error) {
	if list == nil || list.ID <= 0 {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	res, err := r.db.Handle().ExecContext(ctx,
		`UPDATE GroceryList SET Name = ?, CreatedOn = ?, Color = ?, OwnerUserId = ? WHERE Id = ?`,
		list.Name, createdOnValue(list.CreatedOn), nullableString(list.Color), list.OwnerUserID, list.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update grocery list: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	for _, cached := range r.cache {
		if cached.ID == list.ID {
			cached.Name = list.Name
			cached.CreatedOn = list.CreatedOn
			cached.Color = list.Color
			cached.OwnerUserID = list.OwnerUserID
			break
		}
	}

	return list, nil
}

func (r *groceryListRepository) Delete(ctx context.Context, list *domain.GroceryList) (*domain.GroceryList, error) {
	if list == nil || list.ID <= 0 {
		return nil, nil
	}

	if err := r.db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer r.db.Close()

	res, err := r.db.Handle().ExecContext(ctx,
		`DELETE FROM GroceryList WHERE Id = ?`, list.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete grocery list: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	for i, cached := range r.cache {
		if cached.ID == list.ID {
			r.cache = append(r.cache[:i], r.cache[i+1:]...)
			break
		}
	}

	r.logger.DebugContext(ctx, "grocery list deleted", slog.Int64("id", list.ID))
	return list, nil
}

func scanGroceryList(row rowScanner) (*domain.GroceryList, error) {
	var (
		list      domain.GroceryList
		createdOn sql.NullString
		color     sql.NullString
		owner     sql.NullInt64
	)

	if err := row.Scan(&list.ID, &list.Name, &createdOn, &color, &owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan grocery list: %w", err)
	}

	if createdOn.Valid && createdOn.String != "" {
		ts, err := time.Parse(time.RFC3339, createdOn.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse grocery list timestamp %q: %w", createdOn.String, err)
		}
		list.CreatedOn = &ts
	}
	if color.Valid {
		list.Color = color.String
	}
	if owner.Valid {
		list.OwnerUserID = &owner.Int64
	}

	return &list, nil
}

func createdOnValue(ts *time.Time) interface{} {
	if ts == nil {
		return nil
	}
	return ts.UTC().Format(time.RFC3339)
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
