package repository

import "context"

// Throttle limits how often an action keyed by key may happen.
type Throttle interface {
	// Acquire returns ErrTooManyRequests while the key is cooling down.
	Acquire(ctx context.Context, key string) error
}
