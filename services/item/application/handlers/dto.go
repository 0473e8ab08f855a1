package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbecerek/CatalogAPI/services/item/domain/models"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Name        string          `json:"name"        validate:"required,notblank,max=255" example:"Potion"`
	Description string          `json:"description"                                      example:"Restores a small amount of HP"`
	Price       decimal.Decimal `json:"price"       validate:"gte=1,lte=1000"            example:"5" swaggertype:"number"`
} // @name CreateItemRequest

// UpdateItemRequest is the request body for PUT /items/{id}.
// Description is accepted but not applied.
type UpdateItemRequest struct {
	Name        string          `json:"name"        validate:"required,notblank,max=255" example:"Hi-Potion"`
	Description string          `json:"description"                                      example:"Restores a large amount of HP"`
	Price       decimal.Decimal `json:"price"       validate:"gte=1,lte=1000"            example:"9" swaggertype:"number"`
} // @name UpdateItemRequest

// ItemResponse is the wire projection of an item.
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string          `json:"name"        example:"Potion"`
	Description string          `json:"description" example:"Restores a small amount of HP"`
	Price       decimal.Decimal `json:"price"       example:"5" swaggertype:"number"`
	CreatedDate time.Time       `json:"createdDate" example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ErrorResponse is returned on error responses that carry a body.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid item: price must be between 1 and 1000, got 0"`
} // @name ErrorResponse

// ValidationErrorResponse is returned when a request body violates field constraints.
type ValidationErrorResponse struct {
	Error  string            `json:"error"  example:"Validation failed"`
	Fields map[string]string `json:"fields"`
} // @name ValidationErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name.String(),
		Description: item.Description,
		Price:       item.Price,
		CreatedDate: item.CreatedDate,
	}
}

// itemID parses the {id} path parameter. Malformed ids are indistinguishable
// from unknown ids to clients.
func itemID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
