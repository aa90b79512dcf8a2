package http

import (
	"errors"
	"net/http"

	"github.com/arbormail/arbormail/internal/service"
	"github.com/arbormail/arbormail/internal/store"
	"github.com/arbormail/arbormail/internal/utils"
	"github.com/arbormail/arbormail/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongSecret:             http.StatusUnauthorized,
	service.ErrSessionsNotConfigured:   http.StatusServiceUnavailable,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrStoreNotConfigured:      http.StatusNotImplemented,

	store.ErrKeyNotFound:  http.StatusNotFound,
	store.ErrNothingSaved: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// publicMessage returns the operator-facing text for err: the sentinel's
// message when the error maps to a known status, a generic phrase otherwise
// so internal detail stays in the logs.
func publicMessage(err error) string {
	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return http.StatusText(http.StatusInternalServerError)
}

// writeAPIError renders the uniform JSON error body of the management API.
func writeAPIError(w http.ResponseWriter, message string, statusCode int) {
	utils.WriteJSON(w, models.APIError{Error: message}, statusCode)
}
