// cmd/seeder/main.go
//
// Loads demo data through the repository contract. The repositories create
// the schema and the core product rows on construction; this binary adds a
// demo list with a few items on top so a fresh install has something to show.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/emartell/grocery-be/internal/adapters/db"
	"github.com/emartell/grocery-be/internal/core/domain"
	"github.com/emartell/grocery-be/internal/core/ports"
	"github.com/emartell/grocery-be/internal/pkg/config"
	"github.com/emartell/grocery-be/internal/pkg/logger"
)

type demoProduct struct {
	name  string
	stock int
	date  string
	price string
}

type demoItem struct {
	product string
	amount  int
}

var demoProducts = []demoProduct{
	{"Yogurt", 12, "2026-09-14", "0.89"},
	{"Apples", 30, "2026-09-20", "2.49"},
	{"Coffee", 6, "2027-03-01", "7.99"},
	{"Pasta", 18, "2027-08-31", "1.19"},
}

var demoItems = []demoItem{
	{"Milk", 2},
	{"Bread", 1},
	{"Apples", 5},
	{"Coffee", 1},
}

func main() {
	listName := flag.String("list", "Weekly shopping", "name of the demo grocery list")
	listColor := flag.String("color", "#2e8b57", "display color of the demo list")
	skipProducts := flag.Bool("skip-products", false, "do not add the extra demo products")
	flag.Parse()

	slogger := logger.SetupLogger(getEnv("LOG_LEVEL", "info"), getEnv("LOG_FORMAT", "text"))

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	if err := run(ctx, cfg, slogger, *listName, *listColor, *skipProducts); err != nil {
		slogger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, slogger *slog.Logger, listName, listColor string, skipProducts bool) error {
	database, err := db.NewDatabase(&db.Config{
		Directory:   cfg.Database.Directory,
		File:        cfg.Database.File,
		BusyTimeout: cfg.Database.BusyTimeout,
	}, slogger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	slogger.Info("seeding store", slog.String("path", database.Path()))

	products, err := db.NewProductRepository(ctx, database, slogger)
	if err != nil {
		return fmt.Errorf("failed to initialize product repository: %w", err)
	}
	lists, err := db.NewGroceryListRepository(ctx, database, slogger)
	if err != nil {
		return fmt.Errorf("failed to initialize grocery list repository: %w", err)
	}
	items, err := db.NewGroceryListItemRepository(ctx, database, slogger)
	if err != nil {
		return fmt.Errorf("failed to initialize grocery list item repository: %w", err)
	}

	if !skipProducts {
		if err := seedProducts(ctx, products, slogger); err != nil {
			return err
		}
	}

	return seedList(ctx, products, lists, items, slogger, listName, listColor)
}

func seedProducts(ctx context.Context, products ports.ProductRepository, slogger *slog.Logger) error {
	existing, err := products.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read products: %w", err)
	}
	byName := make(map[string]bool, len(existing))
	for _, p := range existing {
		byName[p.Name] = true
	}

	for _, dp := range demoProducts {
		if byName[dp.name] {
			continue
		}

		date, err := time.Parse(domain.DateLayout, dp.date)
		if err != nil {
			return fmt.Errorf("bad demo date for %s: %w", dp.name, err)
		}
		price, err := decimal.NewFromString(dp.price)
		if err != nil {
			return fmt.Errorf("bad demo price for %s: %w", dp.name, err)
		}

		added, err := products.Add(ctx, &domain.Product{
			Name:  dp.name,
			Stock: dp.stock,
			Date:  date,
			Price: price,
		})
		if err != nil {
			return fmt.Errorf("failed to add product %s: %w", dp.name, err)
		}
		if added == nil {
			slogger.Warn("demo product rejected", slog.String("name", dp.name))
			continue
		}
		slogger.Info("product added",
			slog.Int64("id", added.ID),
			slog.String("name", added.Name))
	}

	return nil
}

func seedList(
	ctx context.Context,
	products ports.ProductRepository,
	lists ports.GroceryListRepository,
	items ports.GroceryListItemRepository,
	slogger *slog.Logger,
	listName, listColor string,
) error {
	existing, err := lists.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read lists: %w", err)
	}
	for _, l := range existing {
		if l.Name == listName {
			slogger.Info("demo list already present, nothing to do",
				slog.Int64("id", l.ID),
				slog.String("name", l.Name))
			return nil
		}
	}

	now := time.Now().UTC()
	list, err := lists.Add(ctx, &domain.GroceryList{
		Name:      listName,
		CreatedOn: &now,
		Color:     listColor,
	})
	if err != nil {
		return fmt.Errorf("failed to add demo list: %w", err)
	}
	if list == nil {
		return fmt.Errorf("demo list was rejected")
	}
	slogger.Info("demo list added",
		slog.Int64("id", list.ID),
		slog.String("name", list.Name))

	all, err := products.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read products: %w", err)
	}
	productID := make(map[string]int64, len(all))
	for _, p := range all {
		productID[p.Name] = p.ID
	}

	for _, di := range demoItems {
		id, ok := productID[di.product]
		if !ok {
			slogger.Warn("demo item skipped, product missing",
				slog.String("product", di.product))
			continue
		}

		added, err := items.Add(ctx, &domain.GroceryListItem{
			GroceryListID: list.ID,
			ProductID:     id,
			Amount:        di.amount,
		})
		if err != nil {
			return fmt.Errorf("failed to add item for %s: %w", di.product, err)
		}
		if added == nil {
			slogger.Warn("demo item rejected", slog.String("product", di.product))
			continue
		}
		slogger.Info("item added",
			slog.Int64("id", added.ID),
			slog.String("product", di.product),
			slog.Int("amount", added.Amount))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
