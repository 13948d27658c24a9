package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/orgball2608/board-api/pkg/logger"
)

type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      5,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

func (c Config) backOff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.InitialInterval
	bo.MaxInterval = c.MaxInterval
	bo.Multiplier = c.Multiplier
	bo.MaxElapsedTime = 0
	bo.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(bo, c.MaxRetries), ctx)
}

// Permanent stops Do without further attempts.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls check until it succeeds, cfg.MaxRetries is exhausted or ctx is
// done. The final failure is reported as a transport error naming target.
// Used for startup connectivity only; store calls are never retried.
func Do(ctx context.Context, log logger.Logger, target string, check func(context.Context) error, cfg Config) error {
	attempts := 0
	op := func() error {
		attempts++
		return check(ctx)
	}

	notify := func(err error, next time.Duration) {
		log.Warn(
			"Connection check failed, retrying",
			"target", target,
			"attempt", attempts,
			"error", err,
			"next_attempt_in", next.Round(time.Millisecond).String(),
		)
	}

	if err := backoff.RetryNotify(op, cfg.backOff(ctx), notify); err != nil {
		return errors.Transport(err, fmt.Sprintf("%s unreachable after %d attempts", target, attempts))
	}
	return nil
}
