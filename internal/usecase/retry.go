package usecase

import (
	"context"
	"time"

	"github.com/mikiasgoitom/traceblog/internal/domain/apperror"
)

const maxRetryDelay = 30 * time.Second

// RetryPolicy retries failed reads. Only network and server errors are
// retried; validation, unauthorized and not-found errors return at once.
type RetryPolicy struct {
	Retries   int
	BaseDelay time.Duration
}

// DefaultRetryPolicy retries three times starting at one second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Retries: 3, BaseDelay: time.Second}
}

// delay returns BaseDelay * 2^attempt, capped at 30s.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < attempt && d < maxRetryDelay; i++ {
		d *= 2
	}
	if d > maxRetryDelay {
		d = maxRetryDelay
	}
	return d
}

func (p RetryPolicy) do(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	for attempt := 0; ; attempt++ {
		value, err := fn(ctx)
		if err == nil || attempt >= p.Retries || !apperror.Retryable(err) {
			return value, err
		}
		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, err
		case <-timer.C:
		}
	}
}
