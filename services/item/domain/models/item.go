package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is the catalog's single aggregate: a priced, named, described, timestamped record.
type Item struct {
	ID          uuid.UUID // assigned by the creator, never by the store; immutable
	Name        ItemName
	Description string
	Price       decimal.Decimal
	CreatedDate time.Time // set once at creation, never recomputed
}

// NewItem constructs a fully populated Item. id and createdDate are supplied by
// the caller so that identity and creation instant are decided above the store.
func NewItem(id uuid.UUID, name ItemName, description string, price decimal.Decimal, createdDate time.Time) *Item {
	return &Item{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		CreatedDate: createdDate,
	}
}

// WithChanges returns a copy of the item carrying the new name and price.
// ID, Description and CreatedDate are carried over unchanged.
func (i *Item) WithChanges(name ItemName, price decimal.Decimal) *Item {
	updated := *i
	updated.Name = name
	updated.Price = price
	return &updated
}

// Clone returns an independent copy of the item.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}
