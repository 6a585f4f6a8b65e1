package repository

import (
	"context"
	"errors"
	"time"

	"github.com/clubseats/clubseats-api/internal/domain"
)

// DefaultStoreTimeout bounds every store call so no core operation blocks
// indefinitely. Timed-out calls surface as domain.ErrStoreUnavailable and
// are safe for the caller to retry.
const DefaultStoreTimeout = 3 * time.Second

func withStoreTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

func mapStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrStoreUnavailable
	}

	return err
}
