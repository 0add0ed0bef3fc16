package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNamespacesCodes(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	assert.Equal(t, Code("WIDGET.NOT_FOUND"), code)

	err := reg.New(code)
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.False(t, err.Retryable)
}

func TestConflictErrorsAreRetryable(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("STALE", TypeConflict, http.StatusConflict, "Version is stale")

	err := reg.New(code)
	assert.True(t, err.Retryable)
	assert.True(t, IsRetryable(err))
}

func TestWrapPassesThroughTypedErrors(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("STALE", TypeConflict, http.StatusConflict, "Version is stale")
	inner := reg.New(code)

	wrapped := Wrap(fmt.Errorf("outer context: %w", inner), "should be ignored", TypeInternal)
	assert.True(t, IsCode(wrapped, code), "codes must survive service boundaries")
	assert.Equal(t, TypeConflict, wrapped.Type)
}

func TestWrapForeignError(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, "failed to reach upstream", TypeExternal)

	assert.Equal(t, TypeExternal, wrapped.Type)
	assert.Equal(t, http.StatusBadGateway, wrapped.HTTPStatus)
	assert.ErrorIs(t, wrapped, cause)
}

func TestWithDetailChains(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("BAD", TypeValidation, http.StatusBadRequest, "Bad widget")

	err := reg.New(code).WithDetail("field", "size").WithDetail("value", -1)
	require.Len(t, err.Details, 2)

	resp := err.ToHTTPResponse()
	assert.Equal(t, code, resp["code"])
	assert.Equal(t, err.Details, resp["details"])
}
