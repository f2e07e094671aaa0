package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Ihor-Prokopenko/teams-app/internal/dto"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("failed to encode JSON response", "error", err)
	}
}

// respondMessage writes the uniform {"message": ...} envelope.
func respondMessage(w http.ResponseWriter, status int, message interface{}) {
	respondJSON(w, status, dto.MessageResponse{Message: message})
}

// respondFailure translates a failure surfacing from a service into the
// envelope and status defined by the error taxonomy. Handlers match
// endpoint-specific sentinels before falling back to this table.
func respondFailure(w http.ResponseWriter, err error) {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		respondMessage(w, http.StatusBadRequest, validationErr.Fields)
		return
	}

	var domainErr *errs.DomainError
	if errors.As(err, &domainErr) {
		respondMessage(w, domainErr.Status, domainErr.Message)
		return
	}

	switch {
	case errors.Is(err, errs.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, errs.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, errs.ErrProviderFailure):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errs.IsStoreFailure(err):
		// retries exhausted or the store rejected the write outright
		respondMessage(w, http.StatusExpectationFailed, err.Error())
	default:
		respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// validationFields converts validator failures into the field-scoped
// message map used by the 400 envelope.
func validationFields(err error) *errs.ValidationError {
	fields := map[string][]string{}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			field := fieldErr.Field()
			fields[field] = append(fields[field], validationMessage(fieldErr))
		}
	} else {
		fields["non_field_errors"] = []string{"Invalid input."}
	}

	return &errs.ValidationError{Fields: fields}
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Value is too short."
	case "max":
		return "Value is too long."
	default:
		return "Invalid value."
	}
}
