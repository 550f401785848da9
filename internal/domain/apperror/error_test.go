package apperror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformedIsTreatedAsServerError(t *testing.T) {
	err := fmt.Errorf("list blogs: %w", Malformed(200, errors.New("pageCount out of range")))

	kind, msg := Describe(err)
	assert.Equal(t, KindServer, kind)
	assert.Equal(t, "Unexpected response from server", msg)

	assert.True(t, Retryable(err))
	assert.True(t, Is(err, KindServer))
	assert.True(t, Is(err, KindMalformed))
	assert.ErrorIs(t, err, ErrServer)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", Network(errors.New("reset")), true},
		{"server", FromResponse(503, nil), true},
		{"malformed", Malformed(200, nil), true},
		{"validation", FromResponse(400, nil), false},
		{"unauthorized", FromResponse(401, nil), false},
		{"not found", FromResponse(404, nil), false},
		{"cancelled", Network(context.Canceled), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Retryable(tc.err))
		})
	}
}

func TestDescribe(t *testing.T) {
	kind, msg := Describe(FromResponse(400, []byte(`{"message":["title should not be empty","body should not be empty"],"statusCode":400}`)))
	assert.Equal(t, KindValidation, kind)
	assert.Equal(t, "title should not be empty; body should not be empty", msg)

	kind, msg = Describe(context.DeadlineExceeded)
	assert.Equal(t, KindNetwork, kind)
	assert.Equal(t, networkMessage, msg)

	kind, msg = Describe(errors.New("boom"))
	assert.Equal(t, KindServer, kind)
	assert.Equal(t, genericMessage, msg)

	kind, msg = Describe(nil)
	assert.Empty(t, kind)
	assert.Empty(t, msg)
}
