package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
	"github.com/Ihor-Prokopenko/teams-app/internal/request"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRespondFailure_ValidationError(t *testing.T) {
	rec := httptest.NewRecorder()

	respondFailure(rec, errs.FieldError("name", `Team with name "core" already exists.`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	message, ok := body["message"].(map[string]any)
	require.True(t, ok, "validation failures carry a field map")
	assert.Equal(t, []any{`Team with name "core" already exists.`}, message["name"])
}

func TestRespondFailure_DomainError(t *testing.T) {
	rec := httptest.NewRecorder()

	respondFailure(rec, errs.NewDomainError("Member already in the team", http.StatusBadRequest))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Member already in the team", body["message"])
}

func TestRespondFailure_DomainErrorStatusPreserved(t *testing.T) {
	rec := httptest.NewRecorder()

	respondFailure(rec, errs.NewDomainError("Invalid old password", http.StatusPreconditionFailed))

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestRespondFailure_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	respondFailure(rec, fmt.Errorf("load team: %w", errs.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRespondFailure_Forbidden(t *testing.T) {
	rec := httptest.NewRecorder()

	respondFailure(rec, errs.ErrForbidden)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRespondFailure_ProviderFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	respondFailure(rec, fmt.Errorf("exchange code: %w", errs.ErrProviderFailure))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRespondFailure_StoreFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	respondFailure(rec, &pgconn.PgError{Code: "40001", Message: "serialization failure"})

	assert.Equal(t, http.StatusExpectationFailed, rec.Code)
}

func TestRespondFailure_Unknown(t *testing.T) {
	rec := httptest.NewRecorder()

	respondFailure(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "internal server error", body["message"])
}

func TestValidationFields_UsesJSONNames(t *testing.T) {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := validate.Struct(request.CreateMemberRequest{Email: "not-an-email"})
	require.Error(t, err)

	validationErr := validationFields(err)
	assert.Equal(t, []string{"Enter a valid email address."}, validationErr.Fields["email"])
	assert.Equal(t, []string{"This field is required."}, validationErr.Fields["full_name"])
}

func TestValidationFields_NonValidatorError(t *testing.T) {
	validationErr := validationFields(errors.New("unexpected EOF"))

	assert.Equal(t, []string{"Invalid input."}, validationErr.Fields["non_field_errors"])
}
