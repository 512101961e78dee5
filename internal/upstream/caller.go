package upstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/smartinvest/internal/logger"
	"github.com/sony/gobreaker"
)

// CallerConfig configures a Caller for one provider.
//
// Fields:
//   - Provider: name used in errors, logs and metrics (e.g. "yahoo").
//   - Timeout: deadline applied to each attempt.
//   - MaxRetries: extra attempts for ErrUnavailable failures (0 disables retries).
//   - BaseDelay: first backoff delay; doubled per retry and capped at MaxDelay.
//   - FailureRatio / MinRequests: the breaker trips once at least MinRequests
//     calls were seen in the window and the failure ratio reaches FailureRatio.
//   - OpenTimeout: how long the breaker stays open before probing again.
type CallerConfig struct {
	Provider     string
	Timeout      time.Duration
	MaxRetries   int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	FailureRatio float64
	MinRequests  uint32
	Interval     time.Duration
	OpenTimeout  time.Duration
}

// DefaultCallerConfig returns the settings used for every provider unless overridden.
func DefaultCallerConfig(provider string, timeout time.Duration, maxRetries int) CallerConfig {
	return CallerConfig{
		Provider:     provider,
		Timeout:      timeout,
		MaxRetries:   maxRetries,
		BaseDelay:    200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		FailureRatio: 0.6,
		MinRequests:  5,
		Interval:     30 * time.Second,
		OpenTimeout:  30 * time.Second,
	}
}

// Budget is the longest Do can run under this config: every attempt hitting
// its timeout plus the backoff waits between attempts.
func (c CallerConfig) Budget() time.Duration {
	timeout, maxDelay := c.Timeout, c.MaxDelay
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxDelay <= 0 {
		maxDelay = 2 * time.Second
	}
	retries := max(c.MaxRetries, 0)

	total := timeout * time.Duration(retries+1)
	delay := c.BaseDelay
	for i := 0; i < retries; i++ {
		total += delay
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
	return total
}

// Caller runs provider calls with a per-attempt timeout, bounded retries of
// transient failures and a circuit breaker. It is safe for concurrent use.
type Caller struct {
	cfg     CallerConfig
	breaker *gobreaker.CircuitBreaker
	wait    func(ctx context.Context, d time.Duration) error
}

// NewCaller builds a Caller for a single provider.
func NewCaller(cfg CallerConfig) *Caller {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 2 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        cfg.Provider,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			breakerState.WithLabelValues(name).Set(stateValue(to))
			logger.L().Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
		// Client-side problems say nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrInvalidSymbol) ||
				errors.Is(err, ErrRateLimited) ||
				errors.Is(err, ErrNotConfigured) ||
				errors.Is(err, context.Canceled)
		},
	}
	breakerState.WithLabelValues(cfg.Provider).Set(0)

	return &Caller{
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker(settings),
		wait:    sleepCtx,
	}
}

// Provider returns the provider name this Caller guards.
func (c *Caller) Provider() string { return c.cfg.Provider }

// Do runs fn under the Caller's policy. Errors returned by fn that are not
// already *Error are classified as ErrUnavailable.
func (c *Caller) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	start := time.Now()
	delay := c.cfg.BaseDelay

	var err error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		err = c.attempt(ctx, op, fn)
		if err == nil || !c.retryable(ctx, err) || attempt == c.cfg.MaxRetries {
			break
		}

		logger.L().Debug().
			Str("provider", c.cfg.Provider).
			Str("op", op).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Err(err).
			Msg("upstream call failed, retrying")

		if werr := c.wait(ctx, delay); werr != nil {
			err = NewError(c.cfg.Provider, op, ErrUnavailable, 0, fmt.Errorf("retry aborted: %w", werr))
			break
		}
		delay *= 2
		if delay > c.cfg.MaxDelay {
			delay = c.cfg.MaxDelay
		}
	}

	outcome := Outcome(err)
	callsTotal.WithLabelValues(c.cfg.Provider, op, outcome).Inc()
	callDuration.WithLabelValues(c.cfg.Provider, op).Observe(time.Since(start).Seconds())

	if err != nil {
		logger.L().Warn().
			Str("provider", c.cfg.Provider).
			Str("op", op).
			Str("outcome", outcome).
			Err(err).
			Msg("upstream call failed")
		return err
	}
	logger.L().Debug().
		Str("provider", c.cfg.Provider).
		Str("op", op).
		Dur("elapsed", time.Since(start)).
		Msg("upstream call succeeded")
	return nil
}

func (c *Caller) attempt(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		cctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
		return nil, c.classify(cctx, op, fn(cctx))
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return NewError(c.cfg.Provider, op, ErrUnavailable, 0, err)
	}
	return err
}

func (c *Caller) classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if cerr := ctx.Err(); cerr != nil && !errors.Is(err, cerr) {
		err = fmt.Errorf("%w: %w", cerr, err)
	}
	var ue *Error
	if errors.As(err, &ue) {
		return err
	}
	return NewError(c.cfg.Provider, op, ErrUnavailable, 0, err)
}

func (c *Caller) retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	return KindOf(err) == ErrUnavailable
}

// Call is Do for functions that return a value.
func Call[T any](ctx context.Context, c *Caller, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := c.Do(ctx, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
