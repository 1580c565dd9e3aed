package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/lunchify/order/internal/service/models/order"
	"github.com/corray333/lunchify/order/internal/transport/http/v1/schemas"
	"github.com/go-playground/validator/v10"
)

// JSON writes payload as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Error marshaling response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(data); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// Error maps a domain error to its outward status code and writes the error
// body. Unrecognized errors become a generic 500 without leaking internals.
func Error(w http.ResponseWriter, err error) {
	var (
		notFound      *order.NotFoundError
		invalidStatus *order.InvalidStatusError
		validation    *order.ValidationError
		requestErrs   validator.ValidationErrors
	)

	switch {
	case errors.As(err, &notFound):
		JSON(w, http.StatusNotFound, schemas.ErrorResponse{
			Code:    "ORDER_NOT_FOUND",
			Message: notFound.Error(),
		})
	case errors.As(err, &invalidStatus):
		JSON(w, http.StatusUnprocessableEntity, schemas.ErrorResponse{
			Code:    "INVALID_ORDER_STATUS",
			Message: invalidStatus.Error(),
		})
	case errors.As(err, &validation):
		JSON(w, http.StatusUnprocessableEntity, schemas.ErrorResponse{
			Code:    "ORDER_VALIDATION_ERROR",
			Message: validation.Error(),
		})
	case errors.As(err, &requestErrs):
		JSON(w, http.StatusUnprocessableEntity, schemas.ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: requestErrs.Error(),
		})
	default:
		slog.Error("Unhandled error", "error", err)
		JSON(w, http.StatusInternalServerError, schemas.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		})
	}
}

// BadRequest writes a 400 response for malformed request bodies.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, schemas.ErrorResponse{
		Code:    "BAD_REQUEST",
		Message: message,
	})
}

// UnprocessableEntity writes a 422 response for syntactically valid but
// unusable input, such as a malformed order identifier.
func UnprocessableEntity(w http.ResponseWriter, message string) {
	JSON(w, http.StatusUnprocessableEntity, schemas.ErrorResponse{
		Code:    "INVALID_REQUEST",
		Message: message,
	})
}
