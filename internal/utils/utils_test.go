package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	assert.Equal(t, Hash("https://x/y"), Hash("https://x/y"))
	assert.NotEqual(t, Hash("https://x/y"), Hash("https://x/z"))
	assert.Len(t, Hash(""), 64)
}

func TestHashAllIsUnambiguous(t *testing.T) {
	assert.NotEqual(t, HashAll("ab", "c"), HashAll("a", "bc"))
	assert.Equal(t, HashAll("a", "b"), HashAll("a", "b"))
}

func TestRetryHandlerSucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := NewRetryHandler(time.Second, time.Millisecond, 3).DoContext(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryHandlerReturnsLastError(t *testing.T) {
	calls := 0
	last := errors.New("last")
	err := NewRetryHandler(0, time.Millisecond, 2).DoContext(context.Background(), func(context.Context) error {
		calls++
		if calls == 2 {
			return last
		}
		return errors.New("first")
	})

	assert.ErrorIs(t, err, last)
	assert.Equal(t, 2, calls)
}

func TestRetryHandlerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := NewRetryHandler(0, time.Hour, 3).DoContext(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
