package handler

import (
	"errors"
	"net/http"
	appErrors "taskreminder/internal/pkg/errors"
	"taskreminder/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps application errors onto HTTP status codes.
func respondError(c echo.Context, log logger.Logger, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, appErrors.ErrTaskNotFound):
		status = http.StatusNotFound
	case errors.Is(err, appErrors.ErrInvalidTask),
		errors.Is(err, appErrors.ErrInvalidDateTime),
		errors.Is(err, appErrors.ErrInvalidThreshold):
		status = http.StatusBadRequest
	case errors.Is(err, appErrors.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", err)
		return c.JSON(status, ErrorResponse{Error: appErrors.ErrInternalServer.Error()})
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}
