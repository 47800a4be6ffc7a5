package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"inn/shared/failure"
)

var errSentinel = errors.New("stock ran out")

func TestFailure_GetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "bad request", err: failure.BadRequestFromString("broken"), want: http.StatusBadRequest},
		{name: "not found", err: failure.NotFound("room type not found"), want: http.StatusNotFound},
		{name: "internal", err: failure.InternalError(errors.New("boom")), want: http.StatusInternalServerError},
		{name: "plain error defaults to 500", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestFailure_PreservesSentinel(t *testing.T) {
	wrapped := failure.BadRequest(fmt.Errorf("%w: 2 left", errSentinel))

	assert.True(t, errors.Is(wrapped, errSentinel))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(wrapped))
}

func TestFailure_NilCause(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}
