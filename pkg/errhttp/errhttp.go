// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/sbecerek/CatalogAPI/pkg/httpx"
	itemdomain "github.com/sbecerek/CatalogAPI/services/item/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Not-found is written with an empty body. In production, 5xx messages are
// replaced by the status text.
func WriteError(w http.ResponseWriter, err error, isProduction bool) {
	status := mapErrorToStatus(err)
	if status == http.StatusNotFound {
		httpx.Status(w, status)
		return
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, isProduction))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrInvalidItem):
		return http.StatusBadRequest // 400
	case errors.Is(err, itemdomain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable // 503
	case errors.Is(err, itemdomain.ErrItemAlreadyExists):
		// ids are server-generated; a collision is a server fault
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError // 500
	}
}
