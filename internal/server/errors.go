package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"seasonalDashboard/internal/finance"
)

// APIError is the JSON body of every failed API call.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func newAPIError(status int, code, msg string) *APIError {
	return &APIError{StatusCode: status, ErrorCode: code, Message: msg}
}

// apiError maps pipeline errors to HTTP responses.
func apiError(err error) *APIError {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make([]FieldError, len(verrs))
		for i, fe := range verrs {
			fields[i] = FieldError{Field: fe.Field(), Rule: fe.Tag()}
		}
		e := newAPIError(http.StatusBadRequest, "VALIDATION_FAILED", "request validation failed")
		e.Details = fields
		return e
	case errors.Is(err, finance.ErrFileNotFound):
		return newAPIError(http.StatusServiceUnavailable, "DATA_UNAVAILABLE", "data file not found")
	case errors.Is(err, finance.ErrDateColumnMissing), errors.Is(err, finance.ErrEmptyTable):
		return newAPIError(http.StatusInternalServerError, "CONFIGURATION_ERROR", err.Error())
	case errors.Is(err, finance.ErrUnknownAsset):
		return newAPIError(http.StatusNotFound, "ASSET_NOT_FOUND", err.Error())
	case errors.Is(err, finance.ErrEmptySelection):
		return newAPIError(http.StatusUnprocessableEntity, "EMPTY_SELECTION", "no data for the selected years")
	case errors.Is(err, finance.ErrInvalidWindow), errors.Is(err, finance.ErrInvalidMonth),
		errors.Is(err, finance.ErrInvalidYear), errors.Is(err, errInvalidParameter):
		return newAPIError(http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	case errors.Is(err, finance.ErrNoData):
		return newAPIError(http.StatusUnprocessableEntity, "NO_DATA", err.Error())
	}
	return newAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
}
