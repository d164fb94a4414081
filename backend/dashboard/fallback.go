package dashboard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// WithFallback runs fn and returns fallback instead of failing: errors and
// panics are logged and swallowed. Every exported dashboard view goes
// through it, so callers always get a value of the declared shape.
func WithFallback[T any](ctx context.Context, logger zerolog.Logger, op string, fallback T, fn func(context.Context) (T, error)) (result T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Str("op", op).
				Err(fmt.Errorf("panic: %v", r)).
				Msg("dashboard view panicked, serving fallback")
			result = fallback
		}
	}()

	value, err := fn(ctx)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("dashboard view failed, serving fallback")
		return fallback
	}
	return value
}

// recovered turns a panic in fn into an error, for goroutines that
// WithFallback's recover cannot reach.
func recovered(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}
}
