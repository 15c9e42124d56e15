package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned without contacting the upstream while the
// breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker open")

// Settings tunes a Resilient getter.
type Settings struct {
	// Name labels the breaker in logs.
	Name string
	// Retries is the number of extra attempts after a temporary failure.
	Retries int
	// RetryDelay is the wait before the first retry; it doubles per attempt.
	RetryDelay time.Duration
	// Header is sent with every request.
	Header http.Header
	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultSettings returns one retry after 250ms and a breaker that opens
// after five consecutive failures for 30s.
func DefaultSettings(name string) Settings {
	return Settings{
		Name:             name,
		Retries:          1,
		RetryDelay:       250 * time.Millisecond,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// Resilient performs idempotent GETs behind a circuit breaker with bounded
// retries and exponential backoff.
type Resilient struct {
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	settings Settings
	logger   *slog.Logger
}

// NewResilient wraps client. The breaker only counts transport failures and
// temporary statuses; a 4xx answer is the caller's problem, not an outage.
func NewResilient(client *http.Client, s Settings, logger *slog.Logger) *Resilient {
	if s.FailureThreshold == 0 {
		s.FailureThreshold = 5
	}
	threshold := s.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &Resilient{client: client, breaker: breaker, settings: s, logger: logger}
}

// response carries a completed exchange through the breaker so permanent
// 4xx answers do not count as failures.
type response struct {
	body []byte
	err  error
}

// Get fetches url and returns the body of a 2xx response.
func (r *Resilient) Get(ctx context.Context, url string) ([]byte, error) {
	delay := r.settings.RetryDelay
	var lastErr error

	for attempt := 0; attempt <= r.settings.Retries; attempt++ {
		if attempt > 0 {
			r.logger.Debug("retrying upstream request", "breaker", r.settings.Name, "attempt", attempt, "delay", delay, "error", lastErr)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
			delay *= 2
		}

		out, err := r.breaker.Execute(func() (interface{}, error) {
			return r.do(ctx, url)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s: %w", r.settings.Name, ErrCircuitOpen)
		}
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}

		res, ok := out.(response)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected breaker result %T", r.settings.Name, out)
		}
		return res.body, res.err
	}
	return nil, lastErr
}

// do returns a temporary failure as an error so the breaker records it.
// Permanent client errors and failures caused by the caller's own context
// travel inside the response value.
func (r *Resilient) do(ctx context.Context, url string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return response{err: fmt.Errorf("create request: %w", err)}, nil
	}
	for k, vs := range r.settings.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		err = fmt.Errorf("%s request: %w", r.settings.Name, err)
		if ctx.Err() != nil {
			// The caller gave up; the upstream is not at fault.
			return response{err: err}, nil
		}
		return response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("%s read body: %w", r.settings.Name, err)
		if ctx.Err() != nil {
			return response{err: err}, nil
		}
		return response{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serr := &StatusError{Code: resp.StatusCode, Body: truncate(body)}
		if serr.Temporary() {
			return response{}, serr
		}
		return response{err: serr}, nil
	}
	return response{body: body}, nil
}

// CheckReadiness fails while the breaker is open.
func (r *Resilient) CheckReadiness(_ context.Context) error {
	if r.breaker.State() == gobreaker.StateOpen {
		return fmt.Errorf("%s: %w", r.settings.Name, ErrCircuitOpen)
	}
	return nil
}
