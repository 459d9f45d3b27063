package utils

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryHandler retries a call a fixed number of times. The n-th retry waits n*delay.
type RetryHandler struct {
	timeout  time.Duration
	delay    time.Duration
	attempts int
}

func NewRetryHandler(timeout, delay time.Duration, attempts int) RetryHandler {
	if attempts < 1 {
		attempts = 1
	}
	return RetryHandler{
		timeout:  timeout,
		delay:    delay,
		attempts: attempts,
	}
}

// DoContext gives every attempt its own timeout and stops early when ctx is done.
// It returns the error of the last attempt.
func (h RetryHandler) DoContext(ctx context.Context, fn func(context.Context) error) error {
	var err error
	for i := 0; i < h.attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(h.delay * time.Duration(i)):
			}
		}

		err = h.attempt(ctx, fn)
		if err == nil {
			return nil
		}
		log.Debug().Err(err).Int("attempt", i+1).Msg("retrying call")
	}
	return err
}

func (h RetryHandler) attempt(ctx context.Context, fn func(context.Context) error) error {
	if h.timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return fn(ctx)
}
