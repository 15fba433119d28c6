package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/emartell/grocery-be/internal/core/domain"
)

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name      string
		product   *domain.Product
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_product",
			product: &domain.Product{
				Name:  "Milk",
				Stock: 10,
				Date:  time.Now(),
				Price: decimal.NewFromFloat(1.49),
			},
			wantError: false,
		},
		{
			name: "missing_name",
			product: &domain.Product{
				Stock: 10,
				Price: decimal.NewFromFloat(1.49),
			},
			wantError: true,
			errorMsg:  "name is required",
		},
		{
			name: "negative_stock",
			product: &domain.Product{
				Name:  "Milk",
				Stock: -1,
				Price: decimal.NewFromFloat(1.49),
			},
			wantError: true,
			errorMsg:  "stock cannot be negative",
		},
		{
			name: "negative_price",
			product: &domain.Product{
				Name:  "Milk",
				Stock: 10,
				Price: decimal.NewFromFloat(-0.01),
			},
			wantError: true,
			errorMsg:  "price cannot be negative",
		},
		{
			name: "price_above_maximum",
			product: &domain.Product{
				Name:  "Truffle",
				Stock: 1,
				Price: domain.MaxProductPrice.Add(decimal.NewFromInt(1)),
			},
			wantError: true,
			errorMsg:  "price exceeds maximum",
		},
		{
			name: "zero_stock_is_allowed",
			product: &domain.Product{
				Name:  "Milk",
				Stock: 0,
				Price: decimal.Zero,
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProduct_DateString(t *testing.T) {
	p := &domain.Product{Date: time.Date(2026, 9, 10, 14, 30, 0, 0, time.UTC)}
	assert.Equal(t, "2026-09-10", p.DateString())
}

func TestGroceryList_Validate(t *testing.T) {
	l := &domain.GroceryList{Name: "Weekend shopping"}
	assert.NoError(t, l.Validate())

	l.Name = ""
	assert.Error(t, l.Validate())
}

func TestGroceryListItem_Validate(t *testing.T) {
	tests := []struct {
		name      string
		item      *domain.GroceryListItem
		wantError bool
	}{
		{
			name:      "valid_item",
			item:      &domain.GroceryListItem{GroceryListID: 1, ProductID: 1, Amount: 3},
			wantError: false,
		},
		{
			name:      "zero_list_id",
			item:      &domain.GroceryListItem{GroceryListID: 0, ProductID: 1, Amount: 3},
			wantError: true,
		},
		{
			name:      "negative_product_id",
			item:      &domain.GroceryListItem{GroceryListID: 1, ProductID: -1, Amount: 3},
			wantError: true,
		},
		{
			name:      "zero_amount",
			item:      &domain.GroceryListItem{GroceryListID: 1, ProductID: 1, Amount: 0},
			wantError: true,
		},
		{
			name:      "negative_amount",
			item:      &domain.GroceryListItem{GroceryListID: 1, ProductID: 1, Amount: -2},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
