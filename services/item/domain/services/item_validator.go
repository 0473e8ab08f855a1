// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond the domain layer.
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
)

// Inclusive price bounds accepted on create and update requests.
var (
	MinPrice = decimal.NewFromInt(1)
	MaxPrice = decimal.NewFromInt(1000)
)

// ValidatePrice checks that price lies within [MinPrice, MaxPrice].
// Stored items are not re-validated against these bounds.
func ValidatePrice(price decimal.Decimal) error {
	if price.LessThan(MinPrice) || price.GreaterThan(MaxPrice) {
		return fmt.Errorf("price must be between %s and %s, got %s", MinPrice, MaxPrice, price)
	}
	return nil
}

// ValidateItemForCreation checks a fully constructed Item before it is handed
// to the repository: identity and creation instant must already be assigned,
// and the name and price must satisfy request constraints.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	if item.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	if item.CreatedDate.IsZero() {
		return fmt.Errorf("created date must be set")
	}

	if _, err := models.NewItemName(item.Name.String()); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	if err := ValidatePrice(item.Price); err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}

	return nil
}
