package generate

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Backend turns a prompt into generated text.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Defaults for Settings fields left at zero.
const (
	DefaultMaxAttempts = 3
	DefaultBackoffBase = time.Second
)

// Settings controls the LiveBackend retry policy.
type Settings struct {
	// MaxAttempts is the total number of attempts, so MaxAttempts-1 retries.
	MaxAttempts int
	// BackoffBase is multiplied by 2^n after the nth failed attempt.
	BackoffBase time.Duration
	// AttemptTimeout bounds a single Send. Zero leaves it to the transport.
	AttemptTimeout time.Duration
}

// Attempt describes one finished Send, as reported to an Observer.
type Attempt struct {
	Number  int // 1-based
	Err     error
	Latency time.Duration
	Backoff time.Duration // wait scheduled after this attempt, zero if none
}

// Observer receives every attempt of every call. It must be safe for
// concurrent use when the backend is shared.
type Observer func(ctx context.Context, a Attempt)

// WaitFunc suspends the caller for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Option customizes a LiveBackend.
type Option func(*LiveBackend)

// WithLogger sets the logger used for per-attempt logging.
func WithLogger(logger *slog.Logger) Option {
	return func(b *LiveBackend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithObserver registers fn for attempt reporting.
func WithObserver(fn Observer) Option {
	return func(b *LiveBackend) { b.observe = fn }
}

// WithWait replaces the timer used between attempts.
func WithWait(fn WaitFunc) Option {
	return func(b *LiveBackend) {
		if fn != nil {
			b.wait = fn
		}
	}
}

// LiveBackend sends prompts through a Transport, retrying every failure
// (transport or malformed response) with un-jittered exponential backoff.
// It holds no per-call state; concurrent Generate calls are independent.
type LiveBackend struct {
	transport Transport
	settings  Settings
	logger    *slog.Logger
	observe   Observer
	wait      WaitFunc
}

// NewLiveBackend validates s, filling zero fields with defaults.
func NewLiveBackend(transport Transport, s Settings, opts ...Option) (*LiveBackend, error) {
	if transport == nil {
		return nil, fmt.Errorf("%w: transport cannot be nil", ErrInvalidConfig)
	}
	if s.MaxAttempts < 0 {
		return nil, fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, s.MaxAttempts)
	}
	if s.BackoffBase < 0 || s.AttemptTimeout < 0 {
		return nil, fmt.Errorf("%w: durations cannot be negative", ErrInvalidConfig)
	}
	if s.MaxAttempts == 0 {
		s.MaxAttempts = DefaultMaxAttempts
	}
	if s.BackoffBase == 0 {
		s.BackoffBase = DefaultBackoffBase
	}

	b := &LiveBackend{
		transport: transport,
		settings:  s,
		logger:    slog.Default(),
		wait:      sleep,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Settings returns the effective retry settings.
func (b *LiveBackend) Settings() Settings { return b.settings }

// Generate returns the first candidate's text. After MaxAttempts failures
// it returns an *ExhaustedError wrapping the last failure. If ctx ends the
// call stops at once and the context error is returned.
func (b *LiveBackend) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < b.settings.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("text generation cancelled: %w", err)
		}

		number := attempt + 1
		start := time.Now()
		text, err := b.try(ctx, prompt)
		latency := time.Since(start)

		if err == nil {
			b.report(ctx, Attempt{Number: number, Latency: latency})
			b.logger.InfoContext(ctx, "text generation succeeded",
				"attempt", number,
				"latency_ms", latency.Milliseconds())
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			b.report(ctx, Attempt{Number: number, Err: err, Latency: latency})
			return "", fmt.Errorf("text generation cancelled: %w", ctx.Err())
		}

		if number == b.settings.MaxAttempts {
			b.report(ctx, Attempt{Number: number, Err: err, Latency: latency})
			b.logger.WarnContext(ctx, "text generation attempt failed, no attempts left",
				"attempt", number,
				"max_attempts", b.settings.MaxAttempts,
				"error", err)
			break
		}

		delay := b.backoff(number)
		b.report(ctx, Attempt{Number: number, Err: err, Latency: latency, Backoff: delay})
		b.logger.WarnContext(ctx, "text generation attempt failed, retrying",
			"attempt", number,
			"max_attempts", b.settings.MaxAttempts,
			"delay_ms", delay.Milliseconds(),
			"error", err)

		if err := b.wait(ctx, delay); err != nil {
			return "", fmt.Errorf("text generation cancelled during backoff: %w", err)
		}
	}

	return "", &ExhaustedError{Attempts: b.settings.MaxAttempts, Last: lastErr}
}

func (b *LiveBackend) try(ctx context.Context, prompt string) (string, error) {
	if b.settings.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.settings.AttemptTimeout)
		defer cancel()
	}

	resp, err := b.transport.Send(ctx, prompt)
	if err != nil {
		return "", err
	}
	text, ok := resp.Text()
	if !ok {
		return "", fmt.Errorf("%w: no text at candidates[0].content.parts[0]", ErrMalformedResponse)
	}
	return text, nil
}

// backoff is BackoffBase * 2^failures.
func (b *LiveBackend) backoff(failures int) time.Duration {
	return b.settings.BackoffBase * time.Duration(int64(1)<<uint(failures))
}

func (b *LiveBackend) report(ctx context.Context, a Attempt) {
	if b.observe != nil {
		b.observe(ctx, a)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DisabledBackend stands in for LiveBackend when AI features are switched
// off. It never performs network I/O.
type DisabledBackend struct{}

func (DisabledBackend) Generate(context.Context, string) (string, error) {
	return "", ErrFeatureDisabled
}
