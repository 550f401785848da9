package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikiasgoitom/traceblog/internal/domain/apperror"
	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Delay(t *testing.T) {
	p := RetryPolicy{Retries: 10, BaseDelay: time.Second}
	assert.Equal(t, time.Second, p.delay(0))
	assert.Equal(t, 2*time.Second, p.delay(1))
	assert.Equal(t, 16*time.Second, p.delay(4))
	assert.Equal(t, 30*time.Second, p.delay(5))
	assert.Equal(t, 30*time.Second, p.delay(50))
}

func TestRetryPolicy_RetriesOnlyTransientErrors(t *testing.T) {
	p := RetryPolicy{Retries: 2, BaseDelay: time.Millisecond}

	calls := 0
	_, err := p.do(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, apperror.Network(errors.New("reset"))
	})
	assert.True(t, apperror.Is(err, apperror.KindNetwork))
	assert.Equal(t, 3, calls)

	calls = 0
	_, err = p.do(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, apperror.FromResponse(404, nil)
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, 1, calls)

	calls = 0
	v, err := p.do(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, apperror.FromResponse(503, nil)
		}
		return "ok", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestRetryPolicy_StopsOnCancel(t *testing.T) {
	p := RetryPolicy{Retries: 5, BaseDelay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := p.do(ctx, func(context.Context) (interface{}, error) {
		calls++
		cancel()
		return nil, apperror.Network(errors.New("down"))
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
