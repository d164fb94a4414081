package dashboard

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWithFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := context.Background()

	t.Run("returns the value on success", func(t *testing.T) {
		got := WithFallback(ctx, logger, "ok", -1, func(context.Context) (int, error) { return 42, nil })
		assert.Equal(t, 42, got)
	})

	t.Run("returns the fallback and logs on error", func(t *testing.T) {
		buf.Reset()
		got := WithFallback(ctx, logger, "broken", -1, func(context.Context) (int, error) {
			return 42, errors.New("backend unavailable")
		})
		assert.Equal(t, -1, got)
		assert.Contains(t, buf.String(), "backend unavailable")
		assert.Contains(t, buf.String(), `"op":"broken"`)
	})

	t.Run("recovers panics", func(t *testing.T) {
		buf.Reset()
		got := WithFallback(ctx, logger, "panicky", []string{}, func(context.Context) ([]string, error) {
			panic("nil map write")
		})
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Contains(t, buf.String(), "nil map write")
	})
}

func TestRecovered(t *testing.T) {
	err := recovered(func() error { panic("boom") })()
	assert.EqualError(t, err, "panic: boom")

	assert.NoError(t, recovered(func() error { return nil })())
}
