package handlers

import (
	"net/http"

	"github.com/sbecerek/CatalogAPI/pkg/errhttp"
	"github.com/sbecerek/CatalogAPI/pkg/httpx"
	appsvcs "github.com/sbecerek/CatalogAPI/services/item/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, isProduction bool) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, isProduction: isProduction}
}

// Execute lists items, optionally filtered by name.
//
//	@Summary		List items
//	@Description	Returns every item; nameToMatch keeps items whose name contains it, ignoring case
//	@Tags			items
//	@Produce		json
//	@Param			nameToMatch	query		string	false	"Case-insensitive name substring"
//	@Success		200			{array}		ItemResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context(), r.URL.Query().Get("nameToMatch"))
	if err != nil {
		errhttp.WriteError(w, err, h.isProduction)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toItemResponse(it))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
