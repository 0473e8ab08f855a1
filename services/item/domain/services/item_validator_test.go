package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
)

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		price   string
		wantErr bool
	}{
		{"1", false},
		{"1.00", false},
		{"500.25", false},
		{"1000", false},
		{"0", true},
		{"0.99", true},
		{"1000.01", true},
		{"1001", true},
		{"-5", true},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			err := ValidatePrice(decimal.RequireFromString(tt.price))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePrice(%s) error = %v, wantErr = %v", tt.price, err, tt.wantErr)
			}
		})
	}
}

func TestValidateItemForCreation(t *testing.T) {
	validItem := func() *models.Item {
		return models.NewItem(uuid.New(), "Potion", "", decimal.NewFromInt(10), time.Now().UTC())
	}

	t.Run("nil item returns error", func(t *testing.T) {
		if err := ValidateItemForCreation(nil); err == nil {
			t.Fatal("expected error for nil item")
		}
	})

	t.Run("valid item returns nil", func(t *testing.T) {
		if err := ValidateItemForCreation(validItem()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero ID returns error", func(t *testing.T) {
		item := validItem()
		item.ID = uuid.Nil
		if err := ValidateItemForCreation(item); err == nil {
			t.Fatal("expected error for zero ID")
		}
	})

	t.Run("zero CreatedDate returns error", func(t *testing.T) {
		item := validItem()
		item.CreatedDate = time.Time{}
		if err := ValidateItemForCreation(item); err == nil {
			t.Fatal("expected error for zero CreatedDate")
		}
	})

	t.Run("blank name returns error", func(t *testing.T) {
		item := validItem()
		item.Name = "   "
		if err := ValidateItemForCreation(item); err == nil {
			t.Fatal("expected error for blank name")
		}
	})

	t.Run("out of range price returns error", func(t *testing.T) {
		item := validItem()
		item.Price = decimal.NewFromInt(1001)
		if err := ValidateItemForCreation(item); err == nil {
			t.Fatal("expected error for price above range")
		}
	})
}
