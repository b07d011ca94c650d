// Package summary talks to an Ollama-compatible text generation service.
//
// Summarize never fails: every failure path resolves to one of the Message*
// strings so callers always have something to display.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	promptPrefix    = "Please provide a concise summary of the following text:\n\n"
	breakerName     = "summary-generate"
	maxResponseSize = 4 << 20
)

type GenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type GenerateResponse struct {
	Response *string `json:"response"`
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *zap.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithSleep replaces the backoff wait. Tests use it to record delays.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.sleep = fn
	}
}

func New(cfg Config, opts ...Option) *Client {
	if cfg.HealthAttempts < 1 {
		cfg.HealthAttempts = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	c := &Client{
		cfg:        cfg,
		httpClient: newHTTPClient(),
		logger:     zap.NewNop(),
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("summary")

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
	breakerState.WithLabelValues(breakerName).Set(0)

	return c
}

// newHTTPClient has no overall timeout; each phase sets its own deadline.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          20,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// Summarize returns a summary of text, or a human-readable explanation of why
// there is none. Cancellation of ctx is ignored: once started, the health
// check and generation run until they succeed or fail for good.
func (c *Client) Summarize(ctx context.Context, text string) string {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	message, outcome := c.summarize(ctx, text)

	requestsTotal.WithLabelValues(outcome).Inc()
	requestDuration.Observe(time.Since(start).Seconds())
	return message
}

func (c *Client) summarize(ctx context.Context, text string) (string, string) {
	if err := c.checkHealth(ctx); err != nil {
		c.logger.Error("summarization service unavailable", zap.Error(err))
		return MessageUnavailable, outcomeUnavailable
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.generate(ctx, text)
	})
	if err != nil {
		message, outcome := classify(err)
		c.logger.Error("summary generation failed",
			zap.Error(err),
			zap.String("outcome", outcome),
		)
		return message, outcome
	}

	var resp GenerateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("undecodable generation response", zap.Error(err))
		return MessageFailed, outcomeError
	}
	if resp.Response == nil {
		c.logger.Warn("generation response has no result field")
		return MessageNoSummary, outcomeEmpty
	}

	c.logger.Info("summary generated", zap.Int("length", len(*resp.Response)))
	return *resp.Response, outcomeSuccess
}

func (c *Client) checkHealth(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.HealthAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.cfg.backoff(attempt-1)); err != nil {
				return err
			}
		}

		lastErr = c.probe(ctx)
		if lastErr == nil {
			upstreamAttempts.WithLabelValues("health", "ok").Inc()
			return nil
		}

		upstreamAttempts.WithLabelValues("health", "failed").Inc()
		c.logger.Warn("health check failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.cfg.HealthAttempts),
			zap.Error(lastErr),
		)
	}
	return fmt.Errorf("health check failed after %d attempts: %w", c.cfg.HealthAttempts, lastErr)
}

func (c *Client) probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+c.cfg.HealthPath, http.NoBody)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Attempts: 1}
	}
	return nil
}

// generate posts the prompt and retries on 500, 502, 503 and 504 with
// exponential backoff. Transport errors are not retried.
func (c *Client) generate(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(GenerateRequest{
		Model:       c.cfg.Model,
		Prompt:      promptPrefix + text,
		Stream:      false,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("encode generate request: %w", err)
	}

	for attempt := 1; ; attempt++ {
		body, status, err := c.post(ctx, payload)
		if err != nil {
			upstreamAttempts.WithLabelValues("generate", "error").Inc()
			return nil, fmt.Errorf("generate attempt %d: %w", attempt, err)
		}

		if status >= 200 && status < 300 {
			upstreamAttempts.WithLabelValues("generate", "ok").Inc()
			return body, nil
		}

		upstreamAttempts.WithLabelValues("generate", "bad_status").Inc()
		if !retryableStatus[status] || attempt >= c.cfg.MaxAttempts {
			return nil, &StatusError{StatusCode: status, Attempts: attempt}
		}

		wait := c.cfg.backoff(attempt)
		c.logger.Warn("retrying generation",
			zap.Int("status", status),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
		)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (c *Client) post(ctx context.Context, payload []byte) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.GenerateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+c.cfg.GeneratePath, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, fmt.Errorf("read generate response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
