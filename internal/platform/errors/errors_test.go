package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{ValidationError("bad"), http.StatusBadRequest},
		{ConflictError("dup"), http.StatusBadRequest},
		{NotFoundError("missing"), http.StatusNotFound},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{&Error{Type: "unknown"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "not_found: Activity not found", NotFoundError("Activity not found").Error())

	cause := errors.New("disk on fire")
	assert.Equal(t, "internal: boom: disk on fire", InternalError("boom", cause).Error())
}

func TestError_UnwrapReachesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := InternalError("boom", cause)

	assert.ErrorIs(t, err, cause)
}

func TestToResponse_OnlyDetail(t *testing.T) {
	err := ConflictError("Student already signed up for this activity").
		WithField("email", "a@x")

	assert.Equal(t, ErrorResponse{Detail: "Student already signed up for this activity"}, err.ToResponse())
	assert.Equal(t, "a@x", err.Context["email"])
}

func TestWithField_NilContext(t *testing.T) {
	err := (&Error{Type: TypeNotFound}).WithField("activity", "Chess Club")

	assert.Equal(t, "Chess Club", err.Context["activity"])
}

func TestAsStructuredError(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))

	structured := NotFoundError("Activity not found")
	wrapped := fmt.Errorf("handler: %w", structured)
	assert.Same(t, structured, AsStructuredError(wrapped))

	plain := errors.New("unexpected")
	got := AsStructuredError(plain)
	require.NotNil(t, got)
	assert.Equal(t, TypeInternal, got.Type)
	assert.Equal(t, "internal server error", got.Message)
	assert.ErrorIs(t, got, plain)
}
