package handlers

import (
	"net/http"

	"github.com/sbecerek/CatalogAPI/pkg/errhttp"
	"github.com/sbecerek/CatalogAPI/pkg/httpx"
	appsvcs "github.com/sbecerek/CatalogAPI/services/item/application/services"
)

// GetItemHandler handles GET /items/{id} requests.
type GetItemHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

func NewGetItemHandler(svc *appsvcs.Services, isProduction bool) *GetItemHandler {
	return &GetItemHandler{svc: svc, isProduction: isProduction}
}

// Execute returns one item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"	format(uuid)
//	@Success	200	{object}	ItemResponse
//	@Failure	404
//	@Failure	503	{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		httpx.Status(w, http.StatusNotFound)
		return
	}

	item, err := h.svc.Item.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err, h.isProduction)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
