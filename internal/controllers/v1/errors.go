package v1

import (
	"errors"
	"net/http"

	"github.com/ledgera/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)

// Spesa errors
var (
	errSpesaVoceRequired = errors.New("the voceId and categoriaId must be set to generate the righe")
	errNoIDs             = errors.New("the ids list must not be empty")
)

// Settings errors
var errCurrentUserNotSet = errors.New("no current user is set. Set one via PUT /v1/settings/current-user or pass the user query parameter")

// Report errors
var (
	errPeriodRangeRequired = errors.New("the from and to query parameters must be set")
	errComparisonPeriods   = errors.New("the period1 and period2 query parameters must be set")
)
