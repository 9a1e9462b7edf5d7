package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/TravelTales/travel-claims-backend/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	logger.IsTest = true
}

func TestMissingFields(t *testing.T) {
	err := MissingFields([]string{"phone", "source"})

	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Contains(t, err.Message, "phone, source")
}

func TestMissingFiles(t *testing.T) {
	err := MissingFiles([]string{"ticket"})

	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Contains(t, err.Message, "ticket")
}

func TestStoreErrorsAreDistinct(t *testing.T) {
	connErr := NewStoreConnectionError(errors.New("no reachable servers"))
	insertErr := NewStoreInsertError(errors.New("document failed validation"))

	assert.Equal(t, StoreConnectionError, connErr.Type)
	assert.Equal(t, StoreInsertError, insertErr.Type)
	assert.NotEqual(t, connErr.Type, insertErr.Type)
	assert.Equal(t, http.StatusInternalServerError, connErr.HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, insertErr.HTTPStatus)

	// Client-facing messages carry no raw driver detail.
	assert.NotContains(t, connErr.Message, "no reachable servers")
	assert.NotContains(t, insertErr.Message, "document failed validation")
}

func TestWrapPreservesRawError(t *testing.T) {
	raw := errors.New("boom")
	err := Wrap(raw, ServerError, "something failed")

	assert.Equal(t, raw, err.Raw)
	assert.True(t, errors.Is(err, raw))
	assert.Contains(t, err.Error(), "something failed")
	assert.Nil(t, Wrap(nil, ServerError, "ignored"))
}

func TestValidationFailed(t *testing.T) {
	err := ValidationFailed("invalid_file_type", "ticket has invalid file type text/plain")

	assert.Equal(t, "invalid_file_type", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Contains(t, err.Error(), "ticket has invalid file type")
}
