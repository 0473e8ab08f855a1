package handlers

import (
	"net/http"

	"github.com/sbecerek/CatalogAPI/pkg/errhttp"
	"github.com/sbecerek/CatalogAPI/pkg/httpx"
	pkgvalidator "github.com/sbecerek/CatalogAPI/pkg/validator"
	appsvcs "github.com/sbecerek/CatalogAPI/services/item/application/services"
)

// PutItemHandler handles PUT /items/{id} requests.
type PutItemHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

func NewPutItemHandler(svc *appsvcs.Services, isProduction bool) *PutItemHandler {
	return &PutItemHandler{svc: svc, isProduction: isProduction}
}

// Execute replaces name and price of an existing item.
//
//	@Summary		Update item
//	@Description	Replaces name and price; id, description and createdDate are kept
//	@Tags			items
//	@Accept			json
//	@Param			id		path	string				true	"Item ID"	format(uuid)
//	@Param			request	body	UpdateItemRequest	true	"Item update request"
//	@Success		204
//	@Failure		400	{object}	ValidationErrorResponse
//	@Failure		404
//	@Failure		503	{object}	ErrorResponse
//	@Router			/items/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		httpx.Status(w, http.StatusNotFound)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Item.Update(r.Context(), id, appsvcs.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}); err != nil {
		errhttp.WriteError(w, err, h.isProduction)
		return
	}
	httpx.Status(w, http.StatusNoContent)
}
