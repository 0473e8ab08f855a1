package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/sbecerek/CatalogAPI/pkg/app"
	"github.com/sbecerek/CatalogAPI/services/item/application/handlers"
	appsvcs "github.com/sbecerek/CatalogAPI/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
func ItemRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	prod := a.Config.IsProduction()
	r.Route("/items", func(r chi.Router) {
		r.Get("/", handlers.NewListItemsHandler(svcs, prod).Execute)
		r.Post("/", handlers.NewPostItemHandler(svcs, prod).Execute)
		r.Get("/{id}", handlers.NewGetItemHandler(svcs, prod).Execute)
		r.Put("/{id}", handlers.NewPutItemHandler(svcs, prod).Execute)
		r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs, prod).Execute)
	})
}
