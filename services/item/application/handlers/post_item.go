package handlers

import (
	"net/http"

	"github.com/sbecerek/CatalogAPI/pkg/errhttp"
	"github.com/sbecerek/CatalogAPI/pkg/httpx"
	pkgvalidator "github.com/sbecerek/CatalogAPI/pkg/validator"
	appsvcs "github.com/sbecerek/CatalogAPI/services/item/application/services"
)

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, isProduction bool) *PostItemHandler {
	return &PostItemHandler{svc: svc, isProduction: isProduction}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Creates an item with a server-generated id and creation date
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Header			201		{string}	Location	"/items/{id}"
//	@Failure		400		{object}	ValidationErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Create(r.Context(), appsvcs.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		errhttp.WriteError(w, err, h.isProduction)
		return
	}

	httpx.Created(w, "/items/"+item.ID.String(), toItemResponse(item))
}
