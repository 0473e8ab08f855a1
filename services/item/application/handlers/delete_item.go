package handlers

import (
	"net/http"

	"github.com/sbecerek/CatalogAPI/pkg/errhttp"
	"github.com/sbecerek/CatalogAPI/pkg/httpx"
	appsvcs "github.com/sbecerek/CatalogAPI/services/item/application/services"
)

// DeleteItemHandler handles DELETE /items/{id} requests.
type DeleteItemHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

func NewDeleteItemHandler(svc *appsvcs.Services, isProduction bool) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, isProduction: isProduction}
}

// Execute deletes an existing item.
//
//	@Summary	Delete item
//	@Tags		items
//	@Param		id	path	string	true	"Item ID"	format(uuid)
//	@Success	204
//	@Failure	404
//	@Failure	503	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		httpx.Status(w, http.StatusNotFound)
		return
	}

	if err := h.svc.Item.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err, h.isProduction)
		return
	}
	httpx.Status(w, http.StatusNoContent)
}
